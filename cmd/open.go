package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/mpv"
	"github.com/user/video-clipper-cli/tui"
)

var openCmd = &cobra.Command{
	Use:   "open [video-file]",
	Short: "Open the clipper",
	Long: `Launch mpv and the clipper TUI. The video file is optional: press O to
browse for one, or drop a file onto the terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := startSession(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer s.Close()

		done := make(chan struct{})
		defer close(done)

		var initial string
		if len(args) == 1 {
			initial = args[0]
		}

		mpvBinary := cfg.MpvBinary
		err = tui.Run(tui.Options{
			Player:    s.player,
			Selector:  s.selector,
			Clipper:   s.engine,
			Presenter: s.presenter,
			Journal:   s.journal,
			Events:    tui.Subscribe(s.engine, done),
			OutputDir: cfg.OutputDir,
			Preview: func(path string) error {
				_, err := mpv.LaunchPreview(mpvBinary, path)
				return err
			},
			InitialPath: initial,
		})
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
