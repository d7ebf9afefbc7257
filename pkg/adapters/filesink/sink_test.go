package filesink

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/user/camview/pkg/mocks"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem())
	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveSessionJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	data := []byte(`{"width": 640, "height": 480}`)
	if err := sink.SaveSessionJSON(data); err != nil {
		t.Fatalf("SaveSessionJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "session.json")
	saved, err := fs.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveLumaPlane(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	const w, h = 4, 2
	nv21 := make([]byte, w*h*3/2)
	for i := 0; i < w*h; i++ {
		nv21[i] = byte(i * 10)
	}
	if err := sink.SaveLumaPlane(7, w, h, nv21); err != nil {
		t.Fatalf("SaveLumaPlane failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "luma", "frame-0007.png")
	saved, err := fs.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	img, err := png.Decode(bytes.NewReader(saved))
	if err != nil {
		t.Fatalf("expected valid PNG: %v", err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("expected %dx%d image, got %v", w, h, img.Bounds())
	}
}

func TestSink_SaveProcessedFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	const w, h = 4, 2
	rgba := make([]byte, w*h*4)
	for i := 3; i < len(rgba); i += 4 {
		rgba[i] = 255
	}
	if err := sink.SaveProcessedFrame(1, w, h, rgba); err != nil {
		t.Fatalf("SaveProcessedFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "processed", "frame-0001.png")
	saved, err := fs.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if _, err := png.Decode(bytes.NewReader(saved)); err != nil {
		t.Errorf("expected valid PNG: %v", err)
	}
}

func TestSink_RejectsShortBuffers(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem())
	if err := sink.SaveLumaPlane(0, 4, 2, make([]byte, 3)); err == nil {
		t.Error("expected error for short luma buffer")
	}
	if err := sink.SaveProcessedFrame(0, 4, 2, make([]byte, 3)); err == nil {
		t.Error("expected error for short rgba buffer")
	}
}
