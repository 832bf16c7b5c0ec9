package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/config"
)

var Version = "0.1.0"

// cfg is shared by every command and filled from the persistent flags.
var cfg = config.Default()

// logFile is the open --log-file, closed when the command finishes.
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "video-clipper",
	Short: "Cut clips out of video files",
	Long: `video-clipper plays a video in mpv, lets you pick a start and end time,
and records the selected range as a WebM clip with ffmpeg.

Features:
  - Open a video by path, file picker or by dropping it on the terminal
  - Select the clip range from the playhead or by typing times
  - Record the range to WebM (VP9/VP8 with Opus audio)
  - Preview and save the finished clip`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration:\n%w", err)
		}
		return setupLogging(cmd.Name() == "open")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("video-clipper version %s\n", Version)
	},
}

// setupLogging sends the standard logger to --log-file. Without one, the TUI
// discards log output so it cannot tear the screen; other commands keep stderr.
func setupLogging(tui bool) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "video-clipper")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		return nil
	}
	if tui {
		log.SetOutput(io.Discard)
	}
	return nil
}

func init() {
	cfg.BindFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
