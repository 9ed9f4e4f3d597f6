package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/config"
)

func TestSetupWritesToFile(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "dvlayout.log")
	closer, err := Setup(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Debug().Int("width", 75).Msg("drag committed")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"width":75`) {
		t.Errorf("log file missing field: %s", data)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if _, err := Setup(config.LogConfig{Level: "chatty", File: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewAddsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"time":`) {
		t.Errorf("missing timestamp: %s", buf.String())
	}
}
