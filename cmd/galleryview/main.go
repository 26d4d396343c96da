package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/engine"
	"github.com/bentance/virtualgallery/gallery"
	"github.com/bentance/virtualgallery/viewer"
)

// envConfig carries settings read from the environment. Flags override
// these.
type envConfig struct {
	Backend string `env:"GALLERYVIEW_BACKEND" envDefault:"babylon"`
	Mode    string `env:"GALLERYVIEW_MODE" envDefault:"default"`
	Source  string `env:"GALLERYVIEW_SOURCE" envDefault:"online"`
	Width   int    `env:"GALLERYVIEW_WIDTH" envDefault:"1280"`
	Height  int    `env:"GALLERYVIEW_HEIGHT" envDefault:"720"`
	Verbose bool   `env:"GALLERYVIEW_VERBOSE"`
}

func main() {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var (
		galleryFile = flag.String("gallery", "", "Path to gallery JSON file (omit for the built-in default)")
		backend     = flag.String("backend", cfg.Backend, "Rendering backend (babylon, three)")
		fallback    = flag.Bool("fallback", false, "Fall back to the default backend on unknown -backend")
		mode        = flag.String("mode", cfg.Mode, "Viewer mode (default, explore, admin)")
		source      = flag.String("source", cfg.Source, "Gallery source (online, offline)")
		level       = flag.Int("level", 0, "Switch to this level after startup (1-4)")
		screenshot  = flag.String("screenshot", "", "Write a PNG screenshot to this path")
		watch       = flag.Bool("watch", false, "Watch the gallery file and reload on change")
		list        = flag.Bool("list", false, "List registered backends and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", cfg.Verbose, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		engine.SetLogger(logger)
		viewer.SetLogger(logger)
	}

	if *list {
		listBackends()
		return
	}

	if *interactive {
		if err := runInteractive(*galleryFile, cfg.Width, cfg.Height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	err := run(runOptions{
		galleryFile: *galleryFile,
		backend:     *backend,
		fallback:    *fallback,
		mode:        *mode,
		source:      *source,
		level:       *level,
		screenshot:  *screenshot,
		watch:       *watch,
		width:       cfg.Width,
		height:      cfg.Height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listBackends() {
	fmt.Println("Registered backends:")
	for _, info := range engine.AvailableEngines() {
		status := "implemented"
		if !info.Implemented {
			status = "stub"
		}
		marker := " "
		if info.ID == engine.DefaultBackend {
			marker = "*"
		}
		fmt.Printf("  %s %-10s %-24s %s\n", marker, info.ID, info.DisplayName, status)
	}
}

type runOptions struct {
	galleryFile string
	backend     string
	fallback    bool
	mode        string
	source      string
	level       int
	screenshot  string
	watch       bool
	width       int
	height      int
}

func run(opts runOptions) error {
	ctx := context.Background()

	data, err := loadGallery(opts.galleryFile, gallery.Source(opts.source))
	if err != nil {
		return err
	}

	v := viewer.New(viewer.Options{
		Backend:           engine.BackendID(opts.backend),
		FallbackToDefault: opts.fallback,
		Mode:              gallery.Mode(opts.mode),
		Source:            gallery.Source(opts.source),
		Callbacks: viewer.Callbacks{
			OnReady: func() { fmt.Println("Engine ready") },
			OnError: func(err error) { fmt.Fprintf(os.Stderr, "Engine error: %v\n", err) },
			OnLevelChange: func(level int) {
				fmt.Printf("Level changed to %d\n", level)
			},
		},
	})
	defer v.Close()

	v.SetSurface(virtualgallery.NewCanvas("main", opts.width, opts.height))
	if data != nil {
		v.SetGalleryData(data)
	}

	if err := v.TryStart(ctx); err != nil {
		return err
	}
	eng := v.Engine()
	if eng == nil {
		return fmt.Errorf("engine did not start (missing gallery data for online source?)")
	}

	caps := eng.Capabilities()
	fmt.Printf("Backend: %s (VR %v, shadows %v, max texture %d)\n",
		eng.Name(), caps.VR, caps.Shadows, caps.MaxTextureSize)

	if opts.level > 0 {
		if err := eng.ChangeLevel(ctx, opts.level); err != nil {
			return err
		}
	}

	if opts.screenshot != "" {
		if err := saveScreenshot(ctx, eng, opts.screenshot); err != nil {
			return err
		}
		fmt.Printf("Screenshot written to %s\n", opts.screenshot)
	}

	if opts.watch {
		if opts.galleryFile == "" {
			return fmt.Errorf("-watch requires -gallery")
		}
		return watchGallery(ctx, v, opts.galleryFile)
	}

	return nil
}

func loadGallery(path string, source gallery.Source) (*gallery.Config, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read gallery: %w", err)
		}
		cfg, err := gallery.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode gallery: %w", err)
		}
		return cfg, nil
	}
	if source == gallery.SourceOnline {
		// No file supplied; the built-in gallery stands in for remote data.
		cfg, err := gallery.Default()
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}

func saveScreenshot(ctx context.Context, eng engine.Engine, path string) error {
	png, err := eng.Screenshot(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}

// watchGallery reloads the gallery file on every change until interrupted.
// A file that decodes with errors keeps the previous gallery.
func watchGallery(ctx context.Context, v *viewer.Viewer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	fmt.Printf("Watching %s (ctrl+c to stop)\n", path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
				continue
			}
			cfg, err := gallery.Decode(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
				continue
			}
			v.SetGalleryData(cfg)
			v.TryStart(ctx)
			fmt.Printf("Reloaded %s (%d paintings)\n", path, len(cfg.Paintings))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sig:
			return nil
		}
	}
}
