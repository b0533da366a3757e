package server

import (
	"log/slog"
	"os"

	"github.com/alfredjoe/Online-Quiz/internal/config"
	"github.com/alfredjoe/Online-Quiz/internal/logging"
	"github.com/alfredjoe/Online-Quiz/internal/ocr"
	"github.com/alfredjoe/Online-Quiz/internal/pdf"
	"github.com/alfredjoe/Online-Quiz/internal/question"
	"github.com/alfredjoe/Online-Quiz/internal/server/handler"
	"github.com/alfredjoe/Online-Quiz/internal/server/router"
	"github.com/alfredjoe/Online-Quiz/internal/server/service"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the dependency chain and returns the configured router.
func NewEngine(cfg config.Config) *gin.Engine {
	ocrClient := ocr.NewClient(cfg.Mathpix)
	ocrClient.BaseURL = cfg.MathpixBaseURL

	extractService := service.NewExtractService(
		pdf.NewRasterizer(),
		ocrClient,
		service.WithParser(question.Parser{Boundary: cfg.Boundary}),
		service.WithPageGuard(pdf.PageGuard{Max: cfg.MaxPages}),
	)
	extractHandler := handler.NewExtractHandler(extractService)

	r := router.New(extractHandler)
	if cfg.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = cfg.MaxUploadBytes
	}
	return r
}

// Run starts the HTTP server.
func Run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(os.Stdout, cfg.LogLevel)

	// Set Gin mode based on environment
	if cfg.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if !cfg.Mathpix.Configured() {
		slog.Warn("MATHPIX_APP_ID or MATHPIX_APP_KEY not set; every upload will report no text")
	}

	r := NewEngine(cfg)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "boundary", cfg.Boundary.String(), "max_pages", cfg.MaxPages)
	return r.Run(addr)
}
