package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: " WARN ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "fatal", wantErr: true},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "level", cfg: Config{Level: "loud"}, wantErr: ErrInvalidLevel},
		{name: "encoding", cfg: Config{Encoding: "xml"}, wantErr: ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(Config{Level: "warn", Encoding: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Info("hidden")
	l.Warn("image omitted")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("info entry written at warn level")
	}
	for _, want := range []string{`"level":"WARN"`, `"msg":"image omitted"`, `"timestamp"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %s: %s", want, out)
		}
	}
}
