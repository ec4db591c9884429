package app

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

// Open starts the platform's URL handler and does not wait for it.
func (BrowserOpener) Open(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	if _, err := launch(exec.Command(name, args...)); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}

// launch starts cmd and reaps it in the background. The returned channel
// yields the exit status once the process is gone.
func launch(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
