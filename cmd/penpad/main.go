// Command penpad serves handwriting exercises in the browser and renders
// practice sheets from recorded pointer scripts.
//
// Usage:
//
//	penpad serve [-config penpad.toml] [-addr :8080] [-catalog exercises.yaml] [-v]
//	penpad render [-template circles] [-script events.txt] [-out dir] ...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/penpad"
	"github.com/gogpu/penpad/catalog"
	"github.com/gogpu/penpad/internal/config"
	"github.com/gogpu/penpad/server"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "serve":
		err = serve(os.Args[2:])
	case "render":
		err = render(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("penpad: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: penpad serve|render [flags]")
	fmt.Fprintln(os.Stderr, "run 'penpad <command> -h' for command flags")
}

// setupLogging installs a text logger on stderr at the given level.
func setupLogging(level slog.Level) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	penpad.SetLogger(slog.New(h))
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		configPath  = fs.String("config", "", "TOML config file")
		addr        = fs.String("addr", "", "listen address (overrides config)")
		catalogPath = fs.String("catalog", "", "YAML or TOML exercise catalog (overrides config)")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	level := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	setupLogging(level)

	cat := catalog.Default()
	if cfg.Catalog != "" {
		if cat, err = catalog.Load(cfg.Catalog); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch && cfg.Catalog != "" {
		go func() {
			if err := cat.Watch(ctx, cfg.Catalog, nil); err != nil {
				penpad.Logger().Warn("catalog watch stopped", "err", err)
			}
		}()
	}

	srv := server.New(cat,
		server.WithLanguage(penpad.MatchLanguage(cfg.Language)),
		server.WithPadOptions(
			penpad.WithScale(cfg.Scale),
			penpad.WithFormat(cfg.Format),
		),
	)
	return srv.ListenAndServe(ctx, cfg.Addr)
}

func render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "TOML config file")
		tmplName   = fs.String("template", "none", "template: none, lines, circles, letters")
		width      = fs.Float64("width", 600, "logical surface width")
		height     = fs.Float64("height", 400, "logical surface height")
		scriptPath = fs.String("script", "", "pointer script to replay (default: none)")
		outDir     = fs.String("out", "", "output directory (overrides config)")
		formatName = fs.String("format", "", "png, jpeg, bmp or tiff (overrides config)")
		guides     = fs.Bool("guides", true, "draw ruled guides")
		brush      = fs.Int("brush", penpad.DefaultBrushWidth, "initial brush width")
		letters    = fs.String("letters", "", "sample letters for the letters template")
		exercise   = fs.String("exercise", "render", "exercise id used in the file name")
		lang       = fs.String("lang", "", "label language (overrides config)")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.ExportDir = *outDir
	}
	if *formatName != "" {
		if cfg.Format, err = penpad.ParseFormat(*formatName); err != nil {
			return err
		}
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	level := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	setupLogging(level)

	tmpl, err := penpad.ParseTemplate(*tmplName)
	if err != nil {
		return err
	}

	var script []penpad.ScriptStep
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			return err
		}
		script, err = penpad.ParseScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", *scriptPath, err)
		}
	}

	pad := penpad.New(*exercise, tmpl, nil,
		penpad.WithScale(cfg.Scale),
		penpad.WithFormat(cfg.Format),
		penpad.WithGuides(*guides),
		penpad.WithBrushWidth(*brush),
		penpad.WithLetters(*letters),
		penpad.WithDownloader(penpad.DirDownloader{Dir: cfg.ExportDir}),
	)
	if err := pad.Mount(penpad.FixedLayout{Width: *width, Height: *height}); err != nil {
		return err
	}
	defer pad.Unmount()

	penpad.Replay(pad, script)
	if err := pad.Export(); err != nil {
		return err
	}
	tag := penpad.MatchLanguage(cfg.Language)
	log.Printf("%s, %s", penpad.StrokeLabel(tag, pad.StrokeCount()), penpad.BrushLabel(tag, pad.BrushWidth()))
	return nil
}
