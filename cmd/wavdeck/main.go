// ABOUTME: Entry point for the wavdeck player
// ABOUTME: Parses the directory argument, wires components, runs the command loop
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/wavdeck/wavdeck/internal/audio"
	"github.com/wavdeck/wavdeck/internal/config"
	"github.com/wavdeck/wavdeck/internal/decode"
	"github.com/wavdeck/wavdeck/internal/engine"
	"github.com/wavdeck/wavdeck/internal/keys"
	"github.com/wavdeck/wavdeck/internal/logger"
	"github.com/wavdeck/wavdeck/internal/player"
	"github.com/wavdeck/wavdeck/internal/playlist"
)

func main() {
	app := kingpin.New("wavdeck", "Directory-scanning wav player.")
	app.UsageWriter(os.Stderr)
	dir := app.Arg("directory", "Directory to scan for wav files.").Required().String()

	// Wrong arity prints usage and exits cleanly; there is nothing to
	// retry from here.
	if _, err := app.Parse(os.Args[1:]); err != nil {
		app.Usage(os.Args[1:])
		return
	}

	opts, err := config.Default()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(opts.LogLevel)

	if err := run(*dir, opts); err != nil {
		zlog.Fatal().Err(err).Msg("startup failed")
	}
}

func run(dir string, opts *config.Options) error {
	tracks, err := playlist.Scan(dir)
	if errors.Is(err, playlist.ErrNoTracks) {
		zlog.Error().Str("directory", dir).Msg("no audio files found")
		return nil
	}
	if err != nil {
		return err
	}
	zlog.Info().Int("count", len(tracks)).Msg("found audio files")

	eng, err := engine.New(opts.FramesPerBuffer)
	if err != nil {
		return err
	}
	defer eng.Close()

	cfg, err := eng.Negotiate()
	if err != nil {
		return err
	}
	zlog.Info().
		Int("sample_rate", cfg.SampleRate).
		Int("channels", cfg.Channels).
		Msg("negotiated output device")

	buf := audio.NewBuffer()
	bridge := decode.NewBridge(cfg, buf)
	pl := player.New(tracks, cfg, buf, bridge, eng)

	reader, err := keys.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	// A failed initial play is recoverable: the command loop still runs
	// and the operator can skip to a playable track.
	if err := pl.Play(); err != nil {
		zlog.Error().Err(err).Msg("failed to start playback")
	}

	commandLoop(pl, reader, eng, opts.PollInterval())
	return nil
}

// commandLoop polls for commands with a bounded wait interval until the
// operator interrupts the process. Decode and device errors surface as
// log messages from the player and never unwind past this loop.
func commandLoop(pl *player.Player, reader *keys.Reader, eng engine.Engine, pollInterval time.Duration) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			zlog.Info().Msg("shutting down")
			return
		case <-reader.Interrupts():
			zlog.Info().Msg("shutting down")
			return
		case cmd := <-reader.Commands():
			switch cmd {
			case keys.CmdToggle:
				pl.Toggle()
			case keys.CmdPrevious:
				pl.Previous()
			case keys.CmdNext:
				pl.Next()
			}
		case err := <-eng.Errors():
			zlog.Warn().Err(err).Msg("output stream fault")
		case <-ticker.C:
			// Bounded wake-up so the loop never parks indefinitely.
		}
	}
}
