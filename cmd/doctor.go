package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long: `Check that mpv and ffmpeg are installed and list which clip formats
ffmpeg can record, in the order they are tried.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true

		// Check mpv
		if err := deps.CheckMpv(cfg.MpvBinary); err != nil {
			fmt.Printf("✗ %s: NOT FOUND\n", cfg.MpvBinary)
			fmt.Printf("  Install from: %s\n", deps.MpvInstallURL)
			allGood = false
		} else {
			fmt.Printf("✓ %s: OK\n", cfg.MpvBinary)
		}

		// Check ffmpeg
		if err := deps.CheckFfmpeg(cfg.FfmpegBinary); err != nil {
			fmt.Printf("✗ %s: NOT FOUND\n", cfg.FfmpegBinary)
			fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
			allGood = false
		} else {
			fmt.Printf("✓ %s: OK\n", cfg.FfmpegBinary)

			// Check clip formats
			encoder := clip.NewEncoder(cmd.Context(), cfg.FfmpegBinary)
			if _, err := encoder.Probe(); err != nil {
				fmt.Printf("✗ ffmpeg probe failed: %v\n", err)
				allGood = false
			} else {
				fmt.Println()
				fmt.Println("Clip formats:")
				chosen := false
				for _, f := range capture.DefaultFormats {
					mark := "✗"
					note := ""
					if encoder.IsTypeSupported(f) {
						mark = "✓"
						if !chosen {
							note = " (used)"
							chosen = true
						}
					}
					fmt.Printf("  %s %s%s\n", mark, f.MIME(), note)
				}
				if !chosen {
					fmt.Println("  " + capture.MsgEncodingUnsupported)
					allGood = false
				}
			}
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to record clips.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
