package world

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// Opener shows a URL to the user
type Opener interface {
	Open(ctx context.Context, url string) error
}

// BrowserOpener launches the platform's default browser
type BrowserOpener struct{}

// Open starts the browser without waiting for it to exit
func (BrowserOpener) Open(ctx context.Context, url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "[BrowserOpener.Open] failed to run %s", name)
	}
	go func() { _ = cmd.Wait() }()
	return nil
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
