// Command ls-starfield-gui shows the star field in a desktop window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/version"
	"github.com/litescript/ls-starfield/internal/window"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "Overlay frame statistics and log at debug level")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	profile, err := cfg.ResolveProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	src, err := catalog.New(cfg.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		l, c, err := logging.Open(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer c.Close()
		logger = l
	}
	if *debug {
		logger.SetLevel(logging.LevelDebug)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	sess := state.NewSession(profile)
	logger.Info("starting ls-starfield-gui %s (profile %s, source %s)", version.Version, profile.Name, src.Name())

	// Load in background; the window shows the empty sky until then.
	go func() {
		res, err := catalog.Load(ctx, src, logger.Named("catalog"))
		if err != nil {
			sess.SetLoadError(err)
			return
		}
		sess.SetCatalog(res.Catalog())
	}()

	game := window.NewGame(ctx, sess, window.WithLogger(logger.Named("window")), window.WithDebug(*debug))
	if err := window.Run(game, "ls-starfield "+version.Version, cfg.Width, cfg.Height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
