package main

import (
	"codeberg.org/miketth/dyscover/pkg/audio"
	"codeberg.org/miketth/dyscover/pkg/audio/portaudio"
	"codeberg.org/miketth/dyscover/pkg/config"
	"codeberg.org/miketth/dyscover/pkg/dyscover"
	"codeberg.org/miketth/dyscover/pkg/layoutstore/json"
	"codeberg.org/miketth/dyscover/pkg/layoutstore/memory"
	"codeberg.org/miketth/dyscover/pkg/layoutstore/sqlite"
	"codeberg.org/miketth/dyscover/pkg/speech"
	"codeberg.org/miketth/dyscover/pkg/speech/espeak"
	"context"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"os"
	"path/filepath"
)

type layoutStore interface {
	dyscover.ActiveLayoutStore
	Close() error
}

type saveLooper interface {
	SaveLooper(ctx context.Context) error
}

type memoryStore struct {
	*memory.LayoutStore
}

func (memoryStore) Close() error { return nil }

func openLayoutStore(cfg config.Store, log *zap.SugaredLogger) (layoutStore, error) {
	if cfg.Driver == config.DriverMemory {
		return memoryStore{memory.NewLayoutStore()}, nil
	}

	path := cfg.Path
	if path == "" {
		name := "dyscover/layouts.db"
		if cfg.Driver == config.DriverJSON {
			name = "dyscover/layouts.json"
		}

		var err error
		path, err = xdg.DataFile(name)
		if err != nil {
			return nil, fmt.Errorf("get data path: %w", err)
		}
	}
	log.Infow("layout store", "driver", cfg.Driver, "path", path)

	if cfg.Driver == config.DriverJSON {
		store, err := json.NewLayoutStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := sqlite.NewLayoutStore(path, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

type soundOutput interface {
	dyscover.SoundPlayer
	Close() error
}

type mixerOutput struct {
	*audio.Mixer
	out *portaudio.Output
}

func (m mixerOutput) Close() error {
	return m.out.Close()
}

// silence stands in for the mixer when there is no audio device to drain it.
type silence struct {
	log *zap.SugaredLogger
}

func (s silence) PlaySoundFile(name string) {
	s.log.Debugw("no audio output, skipping sound", "name", name)
}

func (silence) Close() error { return nil }

func openSounds(dir string, log *zap.SugaredLogger) soundOutput {
	mixer := audio.NewMixer(dir, audio.SampleRate, log)
	out, err := portaudio.OpenOutput(mixer, log)
	if err != nil {
		log.Warnw("audio output unavailable, sound cues disabled", "error", err)
		return silence{log: log}
	}
	return mixerOutput{Mixer: mixer, out: out}
}

type speechService interface {
	dyscover.Speaker
	SetVolume(volume float32) error
	Close() error
}

// closingSpeech releases the audio sink once the worker is gone.
type closingSpeech struct {
	*speech.Speech
	sink *portaudio.Speaker
}

func (s closingSpeech) Close() error {
	err := s.Speech.Close()
	if sinkErr := s.sink.Close(); err == nil {
		err = sinkErr
	}
	return err
}

func openSpeech(cfg config.Speech, dataDir string, log *zap.SugaredLogger) speechService {
	if cfg.Engine == config.EngineNone {
		log.Info("speech disabled")
		return speech.NewNoOp(log)
	}

	sink, err := portaudio.OpenSpeaker(log)
	if err != nil {
		log.Warnw("speech audio unavailable, speech disabled", "error", err)
		return speech.NewNoOp(log)
	}

	// without bundled data espeak-ng uses its system data
	espeakData := filepath.Join(dataDir, "espeak-ng-data")
	if _, err := os.Stat(espeakData); err != nil {
		espeakData = ""
	}

	engine := espeak.New(espeak.Options{
		Binary:  cfg.Binary,
		Voice:   cfg.Voice,
		DataDir: espeakData,
	}, sink, log)

	s, err := speech.New(engine, log)
	if err != nil {
		log.Warnw("speech engine failed to start, speech disabled", "error", err)
		_ = sink.Close()
		return speech.NewNoOp(log)
	}
	s.Start()

	return closingSpeech{Speech: s, sink: sink}
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}
