package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/source"
)

// metadataTimeout bounds how long mpv may take to report a file's duration.
const metadataTimeout = 10 * time.Second

var clipCmd = &cobra.Command{
	Use:   "clip <video-file>",
	Short: "Record a clip without the TUI",
	Long: `Record the range between --start and --end of a video and save it as WebM.
Times can be in MM:SS.mmm, HH:MM:SS or seconds format. Without --end the clip
runs to the end of the video. Recording happens in real time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")

		start, err := timeutil.ParseTimeToSeconds(startStr)
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		var end float64
		if endStr != "" {
			end, err = timeutil.ParseTimeToSeconds(endStr)
			if err != nil {
				return fmt.Errorf("invalid end time: %w", err)
			}
		}

		ctx := cmd.Context()
		s, err := startSession(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer s.Close()

		src, err := s.selector.Accept(args[0])
		if err != nil {
			var inputErr *source.InputError
			if errors.As(err, &inputErr) {
				return errors.New(inputErr.Message)
			}
			return err
		}

		metaCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
		err = s.waitForDuration(metaCtx, src)
		cancel()
		if err != nil {
			return err
		}

		duration, _ := src.Duration()
		start, end = cliputil.CalculateClipBounds(start, end, duration)
		if start >= end {
			return fmt.Errorf("%s (%s - %s)", capture.MsgBadRange, timeutil.FormatClock(start), timeutil.FormatClock(end))
		}
		src.Range.SetEnd(end)
		src.Range.SetStart(start)

		events := make(chan capture.Event, 8)
		s.engine.Observe(func(ev capture.Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})

		target := &capture.Target{Name: src.Name, Range: *src.Range}
		fmt.Printf("Clipping %s %s - %s (%.1fs)\n", src.Name,
			timeutil.FormatClock(target.Range.Start), timeutil.FormatClock(target.Range.End), target.Range.Length())
		if err := s.engine.Capture(target); err != nil {
			return errors.New(capture.UserMessage(err))
		}

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				switch ev.State {
				case capture.StateReady:
					dir := cfg.OutputDir
					if dir == "" {
						dir = cliputil.GetOutputDir(src.Path)
					}
					path, err := s.presenter.Save(dir)
					if err != nil {
						return err
					}
					s.journal.Saved(ev.SessionID, path)
					fmt.Printf("Clip saved: %s (%s, %s)\n", path, humanize.Bytes(uint64(ev.Artifact.Size())), ev.Artifact.Format.MIME())
					return nil
				case capture.StateFailed:
					return errors.New(capture.UserMessage(ev.Err))
				}
			}
		}
	},
}

func init() {
	clipCmd.Flags().StringP("start", "s", "0", "Clip start time")
	clipCmd.Flags().StringP("end", "e", "", "Clip end time (default: end of video)")
	rootCmd.AddCommand(clipCmd)
}
