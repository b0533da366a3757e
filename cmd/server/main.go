package main

import (
	"log/slog"
	"os"

	"github.com/alfredjoe/Online-Quiz/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
