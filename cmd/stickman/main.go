// Command stickman is a keyframe animation studio for a posable stick
// figure: pose joints, commit keyframes with transition durations, play
// the looping animation, and record exactly one seamless loop to video.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PDC-hub/Stickman/internal/capture"
	"github.com/PDC-hub/Stickman/internal/config"
	"github.com/PDC-hub/Stickman/internal/platform/logger"
	"github.com/PDC-hub/Stickman/internal/render"
	"github.com/PDC-hub/Stickman/internal/studio"
	"github.com/PDC-hub/Stickman/internal/system"
	"github.com/PDC-hub/Stickman/internal/ui"
)

func main() {
	cfg, uiMode, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.Encoder == "" {
		cfg.Encoder = system.BestEncoder()
		log.Debug("encoder autodetected", "encoder", cfg.Encoder)
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("cannot create output directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := capture.NewFFmpegSink(ctx, cfg.Output, cfg.Encoder, cfg.Quality)
	renderer := render.NewFigureRenderer(cfg.Width, cfg.Height)
	sess := studio.NewSession(cfg, renderer, sink, log)

	if uiMode {
		if _, err := tea.NewProgram(ui.NewModel(sess, cfg)).Run(); err != nil {
			log.Error("ui error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Headless mode: record one loop of the built-in demo animation.
	if err := sess.LoadDemo(); err != nil {
		log.Error("cannot build demo timeline", "error", err)
		os.Exit(1)
	}

	art, err := sess.RecordLoop(ctx)
	if err != nil {
		log.Error("recording failed", "error", err)
		os.Exit(1)
	}
	log.Info("done", "path", art.Path, "frames", art.Frames,
		"duration_s", float64(art.DurationMS)/1000)
}

// parseConfig builds the effective configuration from the config file,
// the environment, and command-line flags, in increasing precedence. It
// also reports whether the interactive UI was requested.
func parseConfig(args []string) (*config.Config, bool, error) {
	cfg := config.Default()

	fs := flag.NewFlagSet("stickman", flag.ContinueOnError)
	uiMode := fs.Bool("ui", false, "Launch the interactive posing studio")
	confPath := fs.String("config", configPath(), "Path of the YAML config file")
	output := fs.String("output", cfg.Output, "Path of the recorded video")
	width := fs.Int("width", cfg.Width, "Frame width")
	height := fs.Int("height", cfg.Height, "Frame height")
	fps := fs.Int("fps", cfg.FPS, "Frames per second")
	quality := fs.Int("quality", cfg.Quality, "Video quality (x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	encoder := fs.String("encoder", cfg.Encoder, "ffmpeg H.264 encoder (empty = autodetect)")
	workers := fs.Int("workers", cfg.Workers, "Render workers (0 = all CPUs)")
	preset := fs.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	if err := config.Load(cfg, *confPath); err != nil {
		return nil, false, err
	}
	config.ApplyEnv(cfg)

	// Flags given on the command line win over the config file and env.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = *output
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fps":
			cfg.FPS = *fps
		case "quality":
			cfg.Quality = *quality
		case "encoder":
			cfg.Encoder = *encoder
		case "workers":
			cfg.Workers = *workers
		}
	})

	switch *preset {
	case "16:9":
		cfg.Width, cfg.Height = 1280, 720
	case "9:16":
		cfg.Width, cfg.Height = 720, 1280
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, *uiMode, nil
}

func configPath() string {
	if p := os.Getenv("STICKMAN_CONFIG"); p != "" {
		return p
	}
	return "stickman.yaml"
}
