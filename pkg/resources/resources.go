package resources

import (
	"github.com/adrg/xdg"
	"os"
	"path/filepath"
)

const (
	EnvBase = "DYSCOVER_RESOURCES"
	appDir  = "dyscover"
)

// Locator resolves the directories holding sound cues and speech data.
type Locator struct {
	base string
}

// New resolves the resource base: an explicit directory, then $DYSCOVER_RESOURCES,
// then the first XDG data dir with a dyscover/ directory, then next to the executable.
func New(explicit string) *Locator {
	return &Locator{base: resolveBase(explicit, xdgCandidates(), executableDir())}
}

func xdgCandidates() []string {
	dirs := append([]string{xdg.DataHome}, xdg.DataDirs...)
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, filepath.Join(dir, appDir))
	}
	return out
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func resolveBase(explicit string, candidates []string, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvBase); env != "" {
		return env
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return fallback
}

func (l *Locator) Base() string {
	return l.base
}

func (l *Locator) AudioDir() string {
	return filepath.Join(l.base, "audio")
}

func (l *Locator) TTSDataDir() string {
	return filepath.Join(l.base, "tts", "data")
}
