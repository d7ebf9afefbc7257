// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/camview/pkg/ports"
)

// Sink saves debug output to files under a base directory: session metadata
// as JSON, intermediate frames as PNG.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSessionJSON saves session metadata as JSON.
func (s *Sink) SaveSessionJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "session.json")
	return s.fs.WriteFile(path, data)
}

// SaveLumaPlane saves the luma plane of a semi-planar frame as a grayscale
// PNG. Chroma is ignored; the luma view is what edge detection sees.
func (s *Sink) SaveLumaPlane(index, width, height int, nv21 []byte) error {
	if len(nv21) < width*height {
		return fmt.Errorf("luma plane too small: need %d bytes, have %d", width*height, len(nv21))
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, nv21[:width*height])

	dir := filepath.Join(s.baseDir, "frames", "luma")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return fmt.Errorf("encode luma frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveProcessedFrame saves a packed RGBA frame after processing as PNG.
func (s *Sink) SaveProcessedFrame(index, width, height int, rgba []byte) error {
	if len(rgba) < width*height*4 {
		return fmt.Errorf("rgba frame too small: need %d bytes, have %d", width*height*4, len(rgba))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba[:width*height*4])

	dir := filepath.Join(s.baseDir, "frames", "processed")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return fmt.Errorf("encode processed frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
