package main

import (
	"log/slog"
	"os"

	"estatcli/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
