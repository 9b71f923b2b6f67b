package handler

import (
	"io"

	appdiagnosis "github.com/autoparts/backend/internal/application/diagnosis"
	"github.com/gin-gonic/gin"
)

// maxDiagnosisImageSize caps a diagnosis upload
const maxDiagnosisImageSize = 10 << 20

// DiagnosisHandler exposes the vehicle damage diagnosis endpoint
type DiagnosisHandler struct {
	BaseHandler
	detector appdiagnosis.Detector
}

// NewDiagnosisHandler creates a diagnosis handler. detector may be nil
// when diagnosis is disabled by configuration.
func NewDiagnosisHandler(detector appdiagnosis.Detector) *DiagnosisHandler {
	return &DiagnosisHandler{detector: detector}
}

// Diagnose handles POST /ml/diagnose with a multipart image upload
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	if h.detector == nil {
		h.HandleDomainError(c, appdiagnosis.ErrUnavailable)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return
	}
	if fileHeader.Size > maxDiagnosisImageSize {
		h.BadRequest(c, "Image exceeds the 10MB limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded image")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxDiagnosisImageSize))
	if err != nil {
		h.BadRequest(c, "Could not read uploaded image")
		return
	}

	report, err := h.detector.Diagnose(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}
