package screencast

import (
	"os"
	"testing"

	"github.com/user/camview/pkg/adapters/logger"
)

func TestResolveChromePath_ExplicitPath(t *testing.T) {
	result := ResolveChromePath("/custom/path/to/chrome")
	if result != "/custom/path/to/chrome" {
		t.Errorf("expected explicit path to be returned, got %s", result)
	}
}

func TestResolveChromePath_EnvVar(t *testing.T) {
	originalEnv := os.Getenv("CHROME_PATH")
	defer os.Setenv("CHROME_PATH", originalEnv)

	os.Setenv("CHROME_PATH", "/env/chrome")

	if result := ResolveChromePath(""); result != "/env/chrome" {
		t.Errorf("expected CHROME_PATH to be used, got %s", result)
	}
	if result := ResolveChromePath("/explicit/chrome"); result != "/explicit/chrome" {
		t.Errorf("expected explicit path to take precedence, got %s", result)
	}
}

func TestNew_Validation(t *testing.T) {
	log := logger.NewNoop()
	if _, err := New(Options{URL: "", Width: 640, Height: 480}, log); err == nil {
		t.Error("expected error for empty URL")
	}
	if _, err := New(Options{URL: "https://example.com", Width: 641, Height: 480}, log); err == nil {
		t.Error("expected error for odd width")
	}

	s, err := New(Options{URL: "https://example.com", Width: 640, Height: 480}, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}
	// Default quality snaps into range.
	if s.opts.Quality != 80 {
		t.Errorf("expected default quality 80, got %d", s.opts.Quality)
	}
}
