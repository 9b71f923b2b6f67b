package diagnosis

import (
	"context"

	"github.com/autoparts/backend/internal/domain/shared"
)

// ErrUnavailable is returned when the detector cannot produce a report
var ErrUnavailable = shared.NewDomainError("DIAGNOSIS_UNAVAILABLE", "Damage diagnosis is temporarily unavailable")

// DetectedPart is one detected vehicle part with its damage classification
type DetectedPart struct {
	Label      string    `json:"label"`
	DamageType string    `json:"damage_type"`
	Box2D      []float64 `json:"box_2d"`
	Conf       float64   `json:"conf"`
}

// DamageReport is the detector output for one uploaded image
type DamageReport struct {
	NumDetections      int            `json:"num_detections"`
	Brand              string         `json:"brand"`
	Model              string         `json:"model"`
	Parts              []DetectedPart `json:"parts"`
	VisualOutputBase64 string         `json:"visual_output_base64"`
}

// Detector analyzes a vehicle image for damaged parts. The production
// implementation shells out to the Python detector.
type Detector interface {
	Diagnose(ctx context.Context, image []byte, filename string) (*DamageReport, error)
}
