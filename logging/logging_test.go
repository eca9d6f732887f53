package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", true, &buf)
	logger.Debug().Int("paths", 10).Msg("priced")

	out := buf.String()
	if !strings.Contains(out, `"level":"debug"`) || !strings.Contains(out, `"paths":10`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", true, &buf)
	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %s", buf.String())
	}
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	logger := New("loud", true, &bytes.Buffer{})
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", logger.GetLevel())
	}
	logger = New("", false, &bytes.Buffer{})
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", logger.GetLevel())
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", false, &buf)
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") || strings.Contains(buf.String(), `"message"`) {
		t.Fatalf("unexpected console output: %s", buf.String())
	}
}
