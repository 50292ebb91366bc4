package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"os"
	"path/filepath"
	"testing"
)

func TestRestrictedDeniesInjection(t *testing.T) {
	h := NewRestricted(zaptest.NewLogger(t).Sugar())

	assert.Equal(t, PermissionDenied, h.PermissionState())
	h.StartInterception()
	assert.Equal(t, PermissionDenied, h.PermissionState())

	for _, k := range []keys.Key{keys.A, keys.Enter, keys.Esc} {
		assert.False(t, h.SendKey(k, keys.KeyDown))
		assert.False(t, h.SendKey(k, keys.KeyUp))
	}

	assert.Equal(t, "B", h.Translate(keys.B, keys.Modifiers{Shift: true}))
	assert.False(t, h.IsCapsLockActive())
	h.StopInterception()
	assert.NoError(t, h.Close())
}

func TestStubHandler(t *testing.T) {
	h := NewStub(zaptest.NewLogger(t).Sugar())
	assert.Equal(t, PermissionUnknown, h.PermissionState())
	assert.False(t, h.SendKey(keys.A, keys.KeyDown))
	assert.Equal(t, "1", h.Translate(keys.One, keys.Modifiers{}))
}

func TestIsRestrictedHost(t *testing.T) {
	dir := t.TempDir()

	chromeos := filepath.Join(dir, "chromeos")
	require.NoError(t, os.WriteFile(chromeos, []byte("CHROMEOS_RELEASE_NAME=Chrome OS\nCHROMEOS_RELEASE_VERSION=1\n"), 0644))
	assert.True(t, isRestrictedHost(chromeos))

	ubuntu := filepath.Join(dir, "ubuntu")
	require.NoError(t, os.WriteFile(ubuntu, []byte("DISTRIB_ID=Ubuntu\n"), 0644))
	assert.False(t, isRestrictedHost(ubuntu))

	assert.False(t, isRestrictedHost(filepath.Join(dir, "missing")))
}

func TestPermissionStateString(t *testing.T) {
	assert.Equal(t, "denied", PermissionDenied.String())
	assert.Equal(t, "limited", PermissionLimited.String())
	assert.Equal(t, "granted", PermissionGranted.String())
	assert.Equal(t, "unknown", PermissionUnknown.String())
}
