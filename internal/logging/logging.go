// Package logging points the global zerolog logger at a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/config"
)

// Setup opens the configured log file, sets the global level and installs
// the file as log.Logger's writer. The returned closer closes the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LevelOrDefault())
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	path, err := cfg.FileOrDefault()
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	//nolint:gosec // G304: path comes from config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = New(f)
	return f, nil
}

// New returns a timestamped logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
