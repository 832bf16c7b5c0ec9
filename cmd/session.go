package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/config"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/mpv"
	"github.com/user/video-clipper-cli/result"
	"github.com/user/video-clipper-cli/source"
)

// session is one running mpv instance with everything wired around it: the
// source selector, the capture engine, the result presenter and the journal.
type session struct {
	process   *exec.Cmd
	client    *mpv.Client
	player    *mpv.Player
	selector  *source.Selector
	encoder   *clip.Encoder
	engine    *capture.Engine
	presenter *result.Presenter
	database  *sql.DB
	journal   *db.Journal
}

// startSession launches mpv and connects the pieces. The caller must Close it.
func startSession(ctx context.Context, c config.Config, headless bool) (*session, error) {
	database, err := db.Open(c.Journal)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	process, err := mpv.LaunchMpv("", mpv.LaunchOptions{
		Binary:     c.MpvBinary,
		SocketPath: c.SocketPath,
		Headless:   headless || c.Headless,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to launch mpv: %w", err)
	}

	// Wait up to 5 seconds for the socket to be ready
	client := mpv.NewClient(c.SocketPath)
	if err := client.ConnectWithRetry(50, 100*time.Millisecond); err != nil {
		// Kill mpv if we couldn't connect
		if process.Process != nil {
			process.Process.Kill()
		}
		database.Close()
		return nil, fmt.Errorf("failed to connect to mpv: %w", err)
	}

	s := &session{
		process:   process,
		client:    client,
		player:    mpv.NewPlayer(client),
		encoder:   clip.NewEncoder(ctx, c.FfmpegBinary),
		presenter: result.NewPresenter(""),
		database:  database,
		journal:   db.NewJournal(database),
	}
	s.encoder.SetChunkSize(c.ChunkSize)
	s.selector = source.NewSelector(s.player)
	s.engine = capture.NewEngine(s.player, s.encoder, capture.NewTickerFrames(float64(c.PollRate)))

	// The presenter goes first so other observers see the published clip.
	s.engine.Observe(s.presenter.Handle)
	s.engine.Observe(s.journal.Record)
	s.selector.OnAccept(func(src *source.Source) {
		s.presenter.Reset()
		s.journal.SourceLoaded(src.Path, src.MIME, src.Size)
		log.Printf("loaded %s (%s)", src.Name, src.MIME)
	})

	// Probe ffmpeg now so the first clip does not wait for it.
	go func() {
		if _, err := s.encoder.Probe(); err != nil {
			log.Printf("ffmpeg probe: %v", err)
			return
		}
		log.Printf("ffmpeg can record: %v (end checked every %v)",
			s.encoder.SupportedFormats(capture.DefaultFormats), c.FrameInterval())
	}()

	return s, nil
}

// waitForDuration polls until mpv reports the loaded file's duration and
// hands it to src.
func (s *session) waitForDuration(ctx context.Context, src *source.Source) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if d, err := s.player.Duration(); err == nil && d > 0 {
			if src.SetDuration(d) {
				s.journal.SourceDuration(src.Path, d)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s metadata: %w", src.Name, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Close stops recording, releases the source and shuts mpv down.
func (s *session) Close() {
	s.engine.Close()
	if err := s.selector.Close(); err != nil {
		log.Printf("release source: %v", err)
	}
	s.presenter.Close()

	if err := s.client.Quit(); err != nil && s.process.Process != nil {
		s.process.Process.Kill()
	}
	s.client.Close()
	_ = s.process.Wait()
	s.database.Close()
}
