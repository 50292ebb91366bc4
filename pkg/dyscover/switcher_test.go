package dyscover

import (
	"codeberg.org/miketth/dyscover/pkg/layouts"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"testing"
	"time"
)

func newTestSwitcher(t *testing.T) (*Switcher, *layouts.Registry, *fakeSettings, *fakeStore) {
	reg := layouts.NewRegistry()
	for _, name := range []string{DefaultLayout, "flemishdefault", "custom"} {
		require.NoError(t, reg.Register(&layouts.Layout{Name: name}))
	}
	settings := defaultSettings()
	store := &fakeStore{}
	return NewSwitcher(reg, store, settings, zaptest.NewLogger(t).Sugar()), reg, settings, store
}

func TestRestoreOrder(t *testing.T) {
	s, reg, settings, store := newTestSwitcher(t)

	require.NoError(t, s.Restore(""))
	assert.Equal(t, DefaultLayout, reg.ActiveName())

	store.name = "custom"
	require.NoError(t, s.Restore(""))
	assert.Equal(t, "custom", reg.ActiveName())

	settings.layout = "flemishdefault"
	require.NoError(t, s.Restore(""))
	assert.Equal(t, "flemishdefault", reg.ActiveName())

	require.NoError(t, s.Restore(DefaultLayout))
	assert.Equal(t, DefaultLayout, reg.ActiveName())

	assert.Equal(t, []string{DefaultLayout, "custom", "flemishdefault", DefaultLayout}, store.Writes())
}

func TestRestoreStoreFailure(t *testing.T) {
	s, reg, _, store := newTestSwitcher(t)
	store.err = errStoreDown

	require.NoError(t, s.Restore(""))
	assert.Equal(t, DefaultLayout, reg.ActiveName())
}

func TestApplyUnknown(t *testing.T) {
	s, reg, _, store := newTestSwitcher(t)
	require.NoError(t, s.Apply("custom"))

	err := s.Apply("klingon")
	assert.ErrorIs(t, err, ErrUnknownLayout)
	assert.Nil(t, reg.ActiveLayout())
	assert.Equal(t, []string{"custom"}, store.Writes())
}

func TestProcessChanges(t *testing.T) {
	s, reg, settings, store := newTestSwitcher(t)
	require.NoError(t, s.Restore(""))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{})
	errCh := make(chan error, 1)
	go func() { errCh <- s.ProcessChanges(ctx, changes) }()

	settings.layout = "custom"
	changes <- struct{}{}
	// unchanged layout is not re-applied
	changes <- struct{}{}

	require.Eventually(t, func() bool {
		return reg.ActiveName() == "custom"
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, []string{DefaultLayout, "custom"}, store.Writes())
}
