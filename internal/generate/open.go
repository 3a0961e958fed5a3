package generate

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// OpenInViewer opens path with the platform's default application. It
// does not wait for the viewer to exit.
func OpenInViewer(ctx context.Context, path string) error {
	name, args := viewerCommand(runtime.GOOS, path)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}

func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
