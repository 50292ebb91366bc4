package speech

import "go.uber.org/zap"

// NoOp stands in for Speech when no engine could be initialized.
type NoOp struct {
	log *zap.SugaredLogger
}

func NewNoOp(log *zap.SugaredLogger) *NoOp {
	return &NoOp{log: log}
}

func (n *NoOp) Speak(text string) {
	n.log.Debugw("speech unavailable, dropping text", "text", text)
}

func (n *NoOp) Stop() {}

func (n *NoOp) SetSpeed(float32) error { return nil }

func (n *NoOp) SetVolume(float32) error { return nil }

func (n *NoOp) Close() error { return nil }
