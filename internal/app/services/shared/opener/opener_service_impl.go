package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type commandFunc func(ctx context.Context, name string, args ...string) error

type desktopOpener struct {
	goos    string
	run     commandFunc
	Log     *zap.Logger
	enabled bool
}

// NewDesktopOpener returns an opener that launches the platform's default
// handler for a file. When disabled it only logs the path, which is the
// server deployment mode.
func NewDesktopOpener(enabled bool, logger *zap.Logger) contracts.Opener {
	return &desktopOpener{
		goos:    runtime.GOOS,
		run:     startCommand,
		Log:     logger,
		enabled: enabled,
	}
}

func (o *desktopOpener) Open(ctx context.Context, path string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !o.enabled {
		o.Log.Info("desktopOpener.Open skipped, opening files is disabled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOutputPathKey, path),
		)
		return nil
	}

	name, args := o.command(path)
	if err := o.run(ctx, name, args...); err != nil {
		o.Log.Error("desktopOpener.Open error starting viewer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOutputPathKey, path),
			zap.Error(err),
		)
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func (o *desktopOpener) command(path string) (string, []string) {
	switch o.goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// startCommand does not wait for the viewer to exit.
func startCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
