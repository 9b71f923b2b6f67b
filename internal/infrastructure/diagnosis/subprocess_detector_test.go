package diagnosis

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	appdiagnosis "github.com/autoparts/backend/internal/application/diagnosis"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/autoparts/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detector.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func newDetector(t *testing.T, script string, timeout time.Duration) *SubprocessDetector {
	t.Helper()
	d, err := NewSubprocessDetector(&config.DiagnosisConfig{
		Interpreter: "sh",
		Script:      script,
		Timeout:     timeout,
	}, nil)
	require.NoError(t, err)
	return d
}

func TestDiagnoseParsesReport(t *testing.T) {
	script := writeScript(t, `#!/bin/sh
cat <<'EOF'
{
  "num_detections": 2,
  "brand": "Toyota",
  "model": "Vios",
  "parts": [
    {"label": "headlight", "damage_type": "broken", "box_2d": [10, 20, 110, 220], "conf": 0.91},
    {"label": "bumper", "damage_type": "dent", "box_2d": [5, 5, 300, 150], "conf": 0.77}
  ],
  "visual_output_base64": "aW1n"
}
EOF
`)
	d := newDetector(t, script, 5*time.Second)

	report, err := d.Diagnose(context.Background(), []byte("fake-jpeg"), "crash.jpg")
	require.NoError(t, err)
	assert.Equal(t, 2, report.NumDetections)
	assert.Equal(t, "Toyota", report.Brand)
	require.Len(t, report.Parts, 2)
	assert.Equal(t, "headlight", report.Parts[0].Label)
	assert.Equal(t, "broken", report.Parts[0].DamageType)
	assert.InDelta(t, 0.91, report.Parts[0].Conf, 0.001)
	assert.Equal(t, "aW1n", report.VisualOutputBase64)
}

func TestDiagnoseScriptFailure(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\nexit 3\n")
	d := newDetector(t, script, 5*time.Second)

	_, err := d.Diagnose(context.Background(), []byte("fake-jpeg"), "crash.jpg")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DIAGNOSIS_UNAVAILABLE", domainErr.Code)
}

func TestDiagnoseMalformedOutput(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'not json'\n")
	d := newDetector(t, script, 5*time.Second)

	_, err := d.Diagnose(context.Background(), []byte("fake-jpeg"), "crash.jpg")
	assert.ErrorIs(t, err, appdiagnosis.ErrUnavailable)
}

func TestDiagnoseTimeout(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\nsleep 5\n")
	d := newDetector(t, script, 100*time.Millisecond)

	start := time.Now()
	_, err := d.Diagnose(context.Background(), []byte("fake-jpeg"), "crash.jpg")
	assert.ErrorIs(t, err, appdiagnosis.ErrUnavailable)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestDiagnoseEmptyImage(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho '{}'\n")
	d := newDetector(t, script, time.Second)

	_, err := d.Diagnose(context.Background(), nil, "crash.jpg")
	assert.ErrorIs(t, err, appdiagnosis.ErrUnavailable)
}

func TestNewSubprocessDetectorRequiresScript(t *testing.T) {
	_, err := NewSubprocessDetector(&config.DiagnosisConfig{Interpreter: "sh"}, nil)
	assert.Error(t, err)
}
