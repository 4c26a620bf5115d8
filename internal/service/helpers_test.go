package service

import (
	"io"
	"log/slog"

	"github.com/mmynk/inventory/pkg/logging"
)

func slogger(w io.Writer) *slog.Logger {
	return slog.New(logging.NewFileHandler(w, slog.LevelDebug))
}
