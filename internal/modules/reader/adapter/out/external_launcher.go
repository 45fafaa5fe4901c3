package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	readerout "readtrack/internal/modules/reader/port/out"
)

type OSExternalLauncher struct{}

func NewOSExternalLauncher() readerout.ExternalLauncher {
	return &OSExternalLauncher{}
}

// Open hands target to $BROWSER when set, otherwise to the platform opener.
func (l *OSExternalLauncher) Open(_ context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("external target is empty")
	}
	var cmd *exec.Cmd
	if browser := os.Getenv("BROWSER"); browser != "" {
		cmd = exec.Command(browser, target)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", target)
		case "linux", "freebsd", "openbsd":
			cmd = exec.Command("xdg-open", target)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
		default:
			return fmt.Errorf("external open is not supported on %s", runtime.GOOS)
		}
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open external target: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
