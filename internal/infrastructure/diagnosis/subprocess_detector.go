// Package diagnosis runs the vehicle damage detector as a subprocess.
package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	appdiagnosis "github.com/autoparts/backend/internal/application/diagnosis"
	"github.com/autoparts/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ appdiagnosis.Detector = (*SubprocessDetector)(nil)

// DefaultTimeout bounds one detector run when no timeout is configured
const DefaultTimeout = 30 * time.Second

// SubprocessDetector invokes the Python detector script with the image
// path as its argument and reads the damage report as JSON from stdout.
// Any subprocess failure is reported to callers as DIAGNOSIS_UNAVAILABLE;
// the underlying error only goes to the log.
type SubprocessDetector struct {
	interpreter string
	script      string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewSubprocessDetector creates a detector from configuration
func NewSubprocessDetector(cfg *config.DiagnosisConfig, logger *zap.Logger) (*SubprocessDetector, error) {
	if cfg == nil {
		return nil, errors.New("diagnosis configuration is required")
	}
	if cfg.Script == "" {
		return nil, errors.New("diagnosis script is required")
	}
	interpreter := cfg.Interpreter
	if interpreter == "" {
		interpreter = "python3"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubprocessDetector{
		interpreter: interpreter,
		script:      cfg.Script,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// Diagnose writes the image to a temp file, runs the detector on it and
// parses the report
func (d *SubprocessDetector) Diagnose(ctx context.Context, image []byte, filename string) (*appdiagnosis.DamageReport, error) {
	if len(image) == 0 {
		return nil, appdiagnosis.ErrUnavailable
	}

	imagePath, cleanup, err := d.writeTempImage(image, filename)
	if err != nil {
		d.logger.Error("Failed to stage diagnosis image", zap.Error(err))
		return nil, appdiagnosis.ErrUnavailable
	}
	defer cleanup()

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, d.interpreter, d.script, imagePath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		d.logger.Error("Detector subprocess failed",
			zap.String("script", d.script),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return nil, appdiagnosis.ErrUnavailable
	}

	var report appdiagnosis.DamageReport
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		d.logger.Error("Detector produced malformed output",
			zap.String("script", d.script),
			zap.Error(err))
		return nil, appdiagnosis.ErrUnavailable
	}

	d.logger.Info("Diagnosis completed",
		zap.Int("detections", report.NumDetections),
		zap.Duration("elapsed", time.Since(start)))
	return &report, nil
}

// writeTempImage stages the upload on disk for the subprocess
func (d *SubprocessDetector) writeTempImage(image []byte, filename string) (string, func(), error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	f, err := os.CreateTemp("", "diagnosis-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp image: %w", err)
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := f.Write(image); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp image: %w", err)
	}
	return path, cleanup, nil
}
