package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/toqueteos/webbrowser"
	webview "github.com/webview/webview_go"
	"golang.org/x/sync/errgroup"

	"github.com/markerbridge/markerbridge/internal/bridge"
	"github.com/markerbridge/markerbridge/internal/config"
	"github.com/markerbridge/markerbridge/internal/credentials"
	"github.com/markerbridge/markerbridge/internal/engine"
	"github.com/markerbridge/markerbridge/internal/engine/simulator"
	"github.com/markerbridge/markerbridge/internal/handlers"
	"github.com/markerbridge/markerbridge/internal/hostpage"
	"github.com/markerbridge/markerbridge/internal/logger"
	"github.com/markerbridge/markerbridge/internal/router"
	"github.com/markerbridge/markerbridge/internal/ws"
)

type options struct {
	browser  bool
	headless bool
	logLevel string
	apiKey   string
	saveKey  bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "markerbridge",
		Short: "Run the marker scanner bridge against the simulated engine",
		Long: `markerbridge serves the host command surface and event stream backed by an
in-memory scanning engine, and opens the development host page.

Examples:
  markerbridge
  markerbridge --browser
  markerbridge --headless --log-level debug`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.browser, "browser", false, "open the host page in the system browser instead of a webview window")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "serve only, open no window")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "engine credential, overrides the keyring")
	cmd.Flags().BoolVar(&opts.saveKey, "save-key", false, "store --api-key in the keyring for later runs")

	cmd.AddCommand(newKeyCommand())

	return cmd
}

// newLogger writes JSON lines when headless, where output is usually
// collected, and text otherwise.
func newLogger(w io.Writer, headless bool, level slog.Level) *slog.Logger {
	if headless {
		return logger.New(w, level)
	}
	return logger.NewText(w, level)
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}
	if opts.saveKey {
		if err := credentials.StoreAPIKey(opts.apiKey); err != nil {
			return fmt.Errorf("save key: %w", err)
		}
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	slogger := newLogger(os.Stdout, opts.headless, level)

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	addr := fmt.Sprintf("http://%s", listener.Addr().String())

	var (
		window     webview.WebView
		dispatcher bridge.Dispatcher
	)
	switch {
	case opts.browser || opts.headless:
		loop := bridge.NewLoop(slogger)
		defer loop.Stop()
		dispatcher = loop
	default:
		window = webview.New(level == slog.LevelDebug)
		defer window.Destroy()
		dispatcher = window
	}

	eng := simulator.New()
	eng.AutoInit = true
	fg := simulator.NewForeground()
	presence := simulator.NewPresence(fg)

	b := bridge.New(bridge.Options{
		Engine:     eng,
		Foreground: presence.Lookup,
		Dispatcher: dispatcher,
		Logger:     slogger,
	})
	defer b.Close()

	hub := ws.NewHub(slogger)
	defer hub.Shutdown()
	b.Attach(hub)
	fg.OnResult = b.OnActivityResult

	b.SetEnvironment(cfg.Env)
	if len(cfg.ScannerParams) > 0 {
		b.SetScannerParams(cfg.ScannerParams)
	}
	b.SetLogoVisible(cfg.LogoVisible)

	h := handlers.New(b, hub, func() string { return cfg.APIKey }, slogger)
	mux := router.New(h, func(string) engine.Slot { return &simulator.Slot{} }, hostpage.Handler(), slogger)
	mountSimulator(mux, eng, slogger)

	srv := &http.Server{Handler: mux}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopper := &windowStopper{}
	if window != nil {
		stopper.window = window
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slogger.Info("server starting", "addr", addr)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		stopper.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	switch {
	case window != nil:
		window.SetTitle("markerbridge")
		window.SetSize(1040, 768, webview.HintMin)
		if err := window.Bind("openExternal", func(url string) error {
			return webbrowser.Open(url)
		}); err != nil {
			slogger.Warn("bind openExternal failed", "err", err)
		}
		window.Navigate(addr)
		window.Run()
		stopper.Exited()
		slogger.Info("window closed, shutting down")
		stop()
	case opts.browser:
		if err := webbrowser.Open(addr); err != nil {
			slogger.Warn("could not open browser", "addr", addr, "err", err)
		}
	}

	return g.Wait()
}
