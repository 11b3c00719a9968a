package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/paint"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

type options struct {
	envFile  string
	dryRun   bool
	noTray   bool
	noServer bool
	overlay  bool
	mode     string
}

func main() {
	var opts options
	flag.StringVar(&opts.envFile, "env", "", "load settings from this .env file")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "log input events instead of moving the real pointer")
	flag.BoolVar(&opts.noTray, "no-tray", false, "run without the system tray menu")
	flag.BoolVar(&opts.noServer, "no-server", false, "do not start the HTTP control surface")
	flag.BoolVar(&opts.overlay, "overlay", true, "draw paint strokes in a fullscreen window")
	flag.StringVar(&opts.mode, "mode", string(control.ModeMouse), "initial mode: mouse or paint")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "mudra:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	mode, err := control.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	st, err := openStore(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := restoreSettings(&cfg, st, logger); err != nil {
		return err
	}
	logger.Info("configuration loaded", "source", cfg.Source, "db", st.Path())

	var injector input.Injector
	screenW, screenH := cfg.Screen.Width, cfg.Screen.Height
	if opts.dryRun {
		injector = input.NewRecorder(logger)
	} else {
		robot := input.NewRobotInjector(logger)
		if screenW == 0 || screenH == 0 {
			screenW, screenH = robot.ScreenSize()
		}
		injector = robot
	}
	if screenW == 0 || screenH == 0 {
		screenW, screenH = 1920, 1080
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink paint.Sink = paint.Discard{}
	var window *overlay.Window
	if opts.overlay {
		window = overlay.New("mudra", screenW, screenH, overlay.DefaultBuffer, logger)
		sink = window
		defer func() {
			logger.Info("overlay stopped", "dropped_commands", window.Dropped())
		}()
	}

	ctrl := control.New(control.Options{
		Config:       cfg,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		Injector:     injector,
		Sink:         sink,
		Logger:       logger,
	})
	if err := ctrl.SetMode(mode); err != nil {
		return err
	}

	det, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        cfg.Camera.MaxHands,
		MinConfidence:   detector.DefaultConfig().MinConfidence,
		MinTrackingConf: detector.DefaultConfig().MinTrackingConf,
	}, logger)
	if err != nil {
		return err
	}

	engine := app.New(app.Options{
		Config: cfg,
		Camera: capture.NewCamera(capture.Options{
			DeviceID: cfg.Camera.ID,
			Width:    cfg.Camera.Width,
			Height:   cfg.Camera.Height,
			FPS:      cfg.Loop.IdleFPS,
			Mirror:   cfg.Camera.Mirror,
		}),
		Detector:   det,
		Controller: ctrl,
		Settings:   st.Settings(),
		History:    st.Events(),
		Logger:     logger,
	})
	if err := engine.Start(ctx); err != nil {
		det.Close()
		return err
	}
	defer engine.Stop()

	var srv *server.Server
	if !opts.noServer {
		srv = server.New(server.Config{
			StaticDir: findWebDir(),
			Controls:  engine,
			Events:    engine,
			Store:     st,
			Logger:    logger,
		})
		go func() {
			if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
				logger.Error("http server failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if opts.noTray {
		if window != nil {
			// HighGUI wants the main thread; the tray is not using it.
			window.Run(ctx)
		}
		<-ctx.Done()
		logger.Info("shutting down")
		return nil
	}

	if window != nil {
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			window.Run(ctx)
		}()
	}

	t := tray.New()
	t.SetMode(mode)
	t.OnToggle(engine.SetEnabled)
	t.OnMode(engine.SetMode)
	t.OnClear(engine.ClearOverlay)
	t.OnOpen(func() {
		logger.Info("dashboard", "url", "http://"+cfg.Server.Addr)
	})
	t.OnQuit(stop)

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.Quit()
				return
			case <-ticker.C:
				status := engine.Status()
				t.SetMode(status.Mode)
				t.SetLastGesture(status.Gesture.String())
			}
		}
	}()

	t.Run()
	logger.Info("shutting down")
	return nil
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		dir := filepath.Join(home, ".mudra")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		path = filepath.Join(dir, "mudra.db")
	}
	return store.New(path)
}

// restoreSettings applies tunables saved through the control surface. Keys
// that are no longer tunable are ignored.
func restoreSettings(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
	saved, err := st.Settings().All()
	if err != nil {
		return fmt.Errorf("read saved settings: %w", err)
	}

	values := make(map[string]string, len(saved))
	for k, v := range saved {
		if config.Tunable(k) {
			values[k] = v
		} else {
			logger.Warn("ignoring saved setting", "key", k)
		}
	}

	next := *cfg
	err = next.Apply(values)
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		logger.Warn("saved settings rejected", "error", err)
		return nil
	}
	*cfg = next
	return nil
}

// findWebDir returns the first dashboard directory found, or "".
func findWebDir() string {
	candidates := []string{"web", "../web", "../../web"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mudra", "web"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}
