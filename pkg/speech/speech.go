package speech

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"sync"
)

type request struct {
	text string
	quit bool
}

// Speech owns the single goroutine that feeds queued text to the engine, one
// utterance at a time.
type Speech struct {
	engine Engine
	log    *zap.SugaredLogger

	queue *queue[request]

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// New initializes the engine. Callers fall back to NoOp when it fails.
func New(engine Engine, log *zap.SugaredLogger) (*Speech, error) {
	if err := engine.Init(); err != nil {
		return nil, fmt.Errorf("init speech engine: %w", err)
	}

	return &Speech{
		engine: engine,
		log:    log,
		queue:  newQueue[request](),
	}, nil
}

// Start launches the worker goroutine. Close stops it.
func (s *Speech) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	s.done = make(chan struct{})

	go s.run(s.done)
}

// Close lets the worker finish what is queued ahead of it, joins it and closes the engine.
func (s *Speech) Close() error {
	s.mu.Lock()
	started, done := s.started, s.done
	s.started = false
	s.mu.Unlock()

	if started {
		s.queue.push(request{quit: true})
		<-done
	}

	if err := s.engine.Close(); err != nil {
		return fmt.Errorf("close speech engine: %w", err)
	}
	return nil
}

// Speak queues text and returns immediately.
func (s *Speech) Speak(text string) {
	if text == "" {
		return
	}
	s.queue.push(request{text: text})
}

// Stop interrupts the current utterance. Queued text is still spoken.
func (s *Speech) Stop() {
	s.engine.Stop()
}

func (s *Speech) SetSpeed(speed float32) error {
	return s.engine.SetSpeed(speed)
}

func (s *Speech) SetVolume(volume float32) error {
	return s.engine.SetVolume(volume)
}

func (s *Speech) run(done chan struct{}) {
	defer close(done)

	for {
		req := s.queue.pop()
		if req.quit {
			return
		}

		s.log.Debugw("speaking", "text", req.text)
		err := s.engine.Speak(context.Background(), req.text)
		switch {
		case errors.Is(err, context.Canceled):
			s.log.Debugw("speech interrupted", "text", req.text)
		case err != nil:
			s.log.Warnw("speak failed", "text", req.text, "error", err)
		}
	}
}
