package views

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	setupOnce   sync.Once
	restoreMu   sync.Mutex
	restoreFunc func() error
)

// Setup prepares stdout for styled output: it enables ANSI processing on
// consoles that need it and fixes the color profile used by every style.
// Only the first call has any effect.
func Setup(noColor bool) {
	setupOnce.Do(func() {
		output := termenv.NewOutput(os.Stdout)
		if restore, err := termenv.EnableVirtualTerminalProcessing(output); err == nil {
			restoreMu.Lock()
			restoreFunc = restore
			restoreMu.Unlock()
		}

		profile := output.EnvColorProfile()
		if noColor {
			profile = termenv.Ascii
		}
		lipgloss.SetColorProfile(profile)
	})
}

// Restore undoes the console mode change made by Setup.
func Restore() {
	restoreMu.Lock()
	defer restoreMu.Unlock()
	if restoreFunc != nil {
		_ = restoreFunc()
		restoreFunc = nil
	}
}
