package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"top level", []string{"help"}, "Commands:"},
		{"dash h", []string{"-h"}, "Commands:"},
		{"explicit convert form", []string{"help"}, "html2pptx convert doctor"},
		{"convert", []string{"help", "convert"}, "--render-js"},
		{"inspect", []string{"help", "inspect"}, "--format"},
		{"doctor", []string{"help", "doctor"}, "--json"},
		{"completion", []string{"help", "completion"}, "powershell"},
		{"version", []string{"help", "version"}, "Print the version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv()
			if code := run(context.Background(), tt.args, env); code != ExitSuccess {
				t.Fatalf("exit = %d", code)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("help output lacks %q:\n%s", tt.want, stdout)
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv()
	runHelp([]string{"publish"}, env)
	if !strings.Contains(stderr.String(), `unknown command "publish"`) {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout.String(), "Commands:") {
		t.Error("usage not printed after unknown command")
	}
}

func TestConvertUsage_ListsThemes(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if code := run(context.Background(), []string{"convert", "--help"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	for _, theme := range []string{"corporate", "forest", "midnight"} {
		if !strings.Contains(stderr.String(), theme) {
			t.Errorf("convert usage lacks theme %q", theme)
		}
	}
}
