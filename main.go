package main

import (
	"codeberg.org/miketth/dyscover/pkg/config"
	"codeberg.org/miketth/dyscover/pkg/device"
	"codeberg.org/miketth/dyscover/pkg/dyscover"
	"codeberg.org/miketth/dyscover/pkg/keyboard"
	"codeberg.org/miketth/dyscover/pkg/layouts"
	"codeberg.org/miketth/dyscover/pkg/notify"
	"codeberg.org/miketth/dyscover/pkg/resources"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	debug := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/dyscover/config.toml)")
	layoutName := flag.String("layout", "", "layout to activate, overrides config and the stored layout")
	layoutsDir := flag.String("layouts", "", "directory with a manifest.yaml of extra layouts")
	resourceDir := flag.String("resources", "", "directory holding audio/ and tts/data/")
	desktopNotify := flag.Bool("notify", true, "show desktop notifications on keyboard hotplug")
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configPath == "" {
		*configPath, err = xdg.ConfigFile("dyscover/config.toml")
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
	}
	cfgLoader := config.NewLoader(*configPath, log.Named("config"))
	cfg, err := cfgLoader.Load()
	if err != nil {
		return err
	}

	registry := layouts.NewRegistry()
	if err := layouts.RegisterBuiltin(registry); err != nil {
		return fmt.Errorf("register builtin layouts: %w", err)
	}
	if *layoutsDir != "" {
		if err := layouts.RegisterManifest(registry, os.DirFS(*layoutsDir)); err != nil {
			return fmt.Errorf("register layouts from %s: %w", *layoutsDir, err)
		}
	}
	log.Infow("layouts registered", "layouts", registry.Names())

	store, err := openLayoutStore(cfg.Store, log.Named("store"))
	if err != nil {
		return fmt.Errorf("open layout store: %w", err)
	}
	defer store.Close()

	locator := resources.New(*resourceDir)
	log.Infow("resources", "audio", locator.AudioDir(), "tts", locator.TTSDataDir())

	sounds := openSounds(locator.AudioDir(), log.Named("audio"))
	defer sounds.Close()

	speaker := openSpeech(cfg.Speech, locator.TTSDataDir(), log.Named("speech"))
	defer speaker.Close()
	if err := speaker.SetVolume(cfg.Volume); err != nil {
		log.Warnw("set speech volume", "error", err)
	}

	handler := keyboard.New(log.Named("keyboard"))
	defer handler.Close()
	handler.StartInterception()
	defer handler.StopInterception()

	var injector dyscover.Injector
	if legacy, err := keyboard.NewLegacyInjector(log.Named("inject")); err != nil {
		log.Warnw("legacy keystroke injection unavailable", "error", err)
	} else {
		injector = legacy
	}

	core := dyscover.NewCore(dyscover.Deps{
		Settings:   cfgLoader,
		Translator: registry,
		Handler:    handler,
		Injector:   injector,
		Speaker:    speaker,
		Sounds:     sounds,
		Clipboard:  systemClipboard{},
		Notifier:   notify.New(*desktopNotify, log.Named("notify")),
	}, log.Named("core"))

	sw := dyscover.NewSwitcher(registry, store, cfgLoader, log.Named("layouts"))
	if err := sw.Restore(*layoutName); err != nil {
		log.Warnw("no layout active, keys pass through untranslated", "error", err)
	}

	detector := device.New(device.Options{
		PollInterval: cfg.Device.PollInterval.Duration,
		Stub:         cfg.Device.Stub,
	}, core, log.Named("device"))
	if err := detector.StartMonitoring(); err != nil {
		return fmt.Errorf("start device monitoring: %w", err)
	}
	defer detector.StopMonitoring()
	log.Infow("device monitoring", "capabilities", detector.Capabilities())

	source := keyboard.NewSource(handler, log.Named("input"))

	log.Info("started dyscover")

	tasks := []task{
		{"process key events", func(ctx context.Context) error {
			return source.ProcessEvents(ctx, core.OnKeyEvent)
		}},
		{"systemd notify", systemdNotifyLoop},
		{"watch config", cfgLoader.Watch},
		{"switch layouts", func(ctx context.Context) error {
			return sw.ProcessChanges(ctx, cfgLoader.Subscribe())
		}},
		{"apply volume", func(ctx context.Context) error {
			return applyVolume(ctx, cfgLoader, speaker, log)
		}},
	}
	if saver, ok := store.(saveLooper); ok {
		tasks = append(tasks, task{"save layouts", saver.SaveLooper})
	}

	errChan := make(chan error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for _, task := range tasks {
		task := task
		go func() {
			defer wg.Done()
			err := task.run(ctx)
			if err != nil {
				errChan <- fmt.Errorf("%s: %w", task.name, err)
			}
		}()
	}

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		stop()
		wg.Wait()
		return nil
	case err != nil:
		stop()
		wg.Wait()
		return err
	}

	return nil
}

type task struct {
	name string
	run  func(ctx context.Context) error
}

// applyVolume pushes the configured volume to the speech engine after each reload.
func applyVolume(ctx context.Context, cfg *config.Loader, speaker speechService, log *zap.SugaredLogger) error {
	changes := cfg.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			if err := speaker.SetVolume(cfg.Volume()); err != nil {
				log.Warnw("set speech volume", "error", err)
			}
		}
	}
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Listening for the Clevy keyboard")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	ticker := time.NewTicker(t / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
