package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/alfredjoe/Online-Quiz/internal/logging"
	"github.com/alfredjoe/Online-Quiz/internal/server/service"

	"github.com/gin-gonic/gin"
)

const (
	msgNoFile = "No file provided"
	msgNotPDF = "File must be a PDF"
	msgNoText = "No text extracted (MathPix creds missing or OCR failed)"
)

// ExtractService defines the behavior consumed by the handler.
type ExtractService interface {
	Process(ctx context.Context, file io.Reader, filename string) (*service.Result, error)
}

// ExtractHandler manages the PDF upload endpoint.
type ExtractHandler struct {
	service ExtractService
}

// NewExtractHandler builds the handler.
func NewExtractHandler(svc ExtractService) *ExtractHandler {
	return &ExtractHandler{service: svc}
}

type extractResponse struct {
	Success   bool     `json:"success"`
	Text      string   `json:"text"`
	Questions []string `json:"questions"`
}

// HandleExtract validates the "file" upload and returns the OCR text with
// the formatted questions.
func (h *ExtractHandler) HandleExtract(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		// A part named "file" with an empty filename is parsed as a plain
		// value; it is an invalid file rather than a missing one.
		if form := c.Request.MultipartForm; form != nil && len(form.Value["file"]) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgNotPDF})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	if header.Filename == "" || !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgNotPDF})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer file.Close()

	res, err := h.service.Process(c.Request.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, service.ErrNoText) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgNoText})
			return
		}
		h.fail(c, err)
		return
	}

	questions := res.Questions
	if questions == nil {
		questions = []string{}
	}
	c.JSON(http.StatusOK, extractResponse{
		Success:   true,
		Text:      res.Text,
		Questions: questions,
	})
}

func (h *ExtractHandler) fail(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).Error("extract failed", "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
