// Command ls-starfield is a terminal star-field viewer with headless
// snapshot and catalog report modes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/ui"
	"github.com/litescript/ls-starfield/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	exportPath   string
	brailleMode  bool
	yaw          float64
	pitch        float64
	showVersion  bool
)

const maxSummaryRejects = 20

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.BoolVar(&summaryMode, "summary", false, "Print a catalog report instead of the TUI")
	flag.StringVar(&snapshotPath, "snapshot", "", "Render one frame to a PNG file")
	flag.StringVar(&exportPath, "export", "", "Export the loaded catalog as JSON (use - for stdout)")
	flag.BoolVar(&brailleMode, "braille", false, "Print one frame as braille text")
	flag.Float64Var(&yaw, "yaw", 0, "Camera yaw in radians for headless frames")
	flag.Float64Var(&pitch, "pitch", 0, "Camera pitch in radians for headless frames")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("ls-starfield %s\n", version.Version)
		return
	}

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

	headless := summaryMode || snapshotPath != "" || exportPath != "" || brailleMode
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	// Set up logging; the TUI owns the terminal, so it only logs to a file.
	logger, closeLog, err := setupLogging(cfg, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	sess := state.NewSession(profile)

	if headless {
		if err := runHeadless(ctx, src, sess, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !isTTY {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -summary, -snapshot, -export or -braille")
		os.Exit(2)
	}

	logger.Info("starting ls-starfield %s (profile %s, source %s)", version.Version, profile.Name, src.Name())

	// Create TUI model; the catalog loads in the background and the first
	// frames show the empty sky.
	model := ui.New(sess, logger.Named("ui")).
		WithLoader(ui.LoadCatalog(ctx, src, logger.Named("catalog")))

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Run TUI (blocks until quit)
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// The alt-screen hid the failure; report it once the terminal is back.
	if m, ok := final.(ui.Model); ok && m.LoadErr() != nil {
		fmt.Fprintf(os.Stderr, "Catalog not loaded: %v\n", m.LoadErr())
	}
}

func setupLogging(cfg config.Config, headless bool) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		l, c, err := logging.Open(cfg.LogFile, level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = c.Close() }, nil
	}
	if headless {
		return logging.New(level), func() {}, nil
	}
	return logging.Discard(), func() {}, nil
}

// runHeadless loads the catalog once and writes the requested outputs.
func runHeadless(ctx context.Context, src catalog.Source, sess *state.Session, cfg config.Config, logger *logging.Logger) error {
	res, err := catalog.Load(ctx, src, logger.Named("catalog"))
	if err != nil && !errors.Is(err, catalog.ErrNoRows) {
		return err
	}
	if err != nil {
		// An empty catalog still renders a black frame and a report.
		logger.Warn("%v", err)
	}
	sess.SetCatalog(res.Catalog())
	sess.SetOrientation(yaw, pitch)

	if summaryMode {
		catalog.WriteSummary(os.Stdout, res, maxSummaryRejects)
	}

	if exportPath != "" {
		if err := writeExport(res, exportPath); err != nil {
			return err
		}
	}

	if snapshotPath != "" {
		r := render.NewRaster(cfg.Width, cfg.Height)
		st := render.FrameSnapshot(r, sess.Snapshot())
		if err := r.WritePNG(snapshotPath); err != nil {
			return err
		}
		logger.Info("wrote %s (%dx%d, %s): %d drawn, %d culled, %d faint",
			snapshotPath, cfg.Width, cfg.Height, sess.Camera().Mode, st.Drawn, st.Culled, st.Faint)
	}

	if brailleMode {
		cols, rows := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols, rows = w, h-1
		}
		b := render.NewBraille(cols, rows)
		render.FrameSnapshot(b, sess.Snapshot())
		fmt.Println(b.String())
	}
	return nil
}

func writeExport(res catalog.Result, path string) error {
	export := catalog.ExportResult(res)
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteJSON(w); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}
