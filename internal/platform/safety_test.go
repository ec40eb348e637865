package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsDevRun(t *testing.T) {
	if !IsDevRun() {
		t.Error("a test binary should count as a dev run")
	}
}

func TestResolvePath(t *testing.T) {
	inTemp := filepath.Join(os.TempDir(), "already", "safe")
	sandbox := filepath.Join(os.TempDir(), "jot-dev")

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{name: "Untouched", path: "notes", want: "notes"},
		{name: "Empty Means Cwd", path: "", want: "."},
		{name: "Redirected", path: "/home/me/notes", forceTemp: true, want: filepath.Join(sandbox, "notes")},
		{name: "Cwd Redirected", path: ".", forceTemp: true, want: filepath.Join(sandbox, "default")},
		{name: "Temp Path Trusted", path: inTemp, forceTemp: true, want: inTemp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.path, tt.forceTemp); got != tt.want {
				t.Errorf("ResolvePath(%q, %v) = %q, want %q", tt.path, tt.forceTemp, got, tt.want)
			}
		})
	}
}
