package speech

import "context"

// Engine is a text-to-speech backend.
type Engine interface {
	// Init prepares the engine; an error means speech is unavailable.
	Init() error
	// Speak synthesizes and plays text, blocking until done or ctx is cancelled.
	Speak(ctx context.Context, text string) error
	// Stop interrupts the utterance in progress, if any.
	Stop()
	SetSpeed(speed float32) error
	SetVolume(volume float32) error
	Close() error
}
