package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONLogger(t *testing.T) {
	type entry struct {
		Level      string            `json:"level"`
		Time       string            `json:"time"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties"`
		Trace      string            `json:"trace"`
	}

	t.Run("info entry carries level, message and properties", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})
		var e entry
		if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.Level != "INFO" {
			t.Errorf("expected level INFO; got %s", e.Level)
		}
		if e.Message != "starting server" {
			t.Errorf("unexpected message %q", e.Message)
		}
		if e.Properties["addr"] != ":4000" {
			t.Errorf("missing addr property, got %v", e.Properties)
		}
		if e.Trace != "" {
			t.Error("info entries must not carry a stack trace")
		}
	})

	t.Run("error entry carries a stack trace", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("boom"), nil)
		var e entry
		if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.Level != "ERROR" {
			t.Errorf("expected level ERROR; got %s", e.Level)
		}
		if e.Trace == "" {
			t.Error("expected a stack trace on error entries")
		}
	})

	t.Run("entries below the minimum level are suppressed", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintInfo("noise", nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %q", buf.String())
		}
	})

	t.Run("Write logs at the error level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		if _, err := l.Write([]byte("http: panic serving")); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"level":"ERROR"`) {
			t.Errorf("expected ERROR entry; got %q", buf.String())
		}
	})
}
