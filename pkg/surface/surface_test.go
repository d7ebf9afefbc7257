package surface

import (
	"testing"

	"github.com/user/camview/pkg/adapters/logger"
	"github.com/user/camview/pkg/mocks"
	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

func newSurface(t *testing.T, gl *mocks.GL, width, height int) *Surface {
	t.Helper()
	s, err := New(gl, logger.NewNoop(), width, height)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestNew_AllocatesResources(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 640, 480)

	if s.Degraded() {
		t.Fatal("surface should not be degraded")
	}
	if len(gl.LivePrograms) != 1 {
		t.Errorf("expected 1 live program, got %d", len(gl.LivePrograms))
	}
	// Shaders are deleted after linking.
	if len(gl.LiveShaders) != 0 {
		t.Errorf("expected no live shaders after link, got %d", len(gl.LiveShaders))
	}
	if len(gl.LiveTextures) != 1 || len(gl.LiveBuffers) != 1 {
		t.Errorf("expected 1 texture and 1 buffer, got %d/%d",
			len(gl.LiveTextures), len(gl.LiveBuffers))
	}

	// Texture storage allocated once at full resolution.
	if len(gl.Uploads) != 1 || gl.Uploads[0].Sub {
		t.Fatalf("expected a single TexImage2D allocation, got %+v", gl.Uploads)
	}
	if gl.Uploads[0].Width != 640 || gl.Uploads[0].Height != 480 {
		t.Errorf("texture storage: expected 640x480, got %dx%d",
			gl.Uploads[0].Width, gl.Uploads[0].Height)
	}
	if gl.PixelStore[ports.GLUnpackAlignment] != 1 {
		t.Error("expected unpack alignment 1")
	}
	if gl.TexParams[ports.GLTextureMinFilter] != ports.GLLinear ||
		gl.TexParams[ports.GLTextureWrapS] != ports.GLClampToEdge {
		t.Error("expected linear filtering with clamp-to-edge wrap")
	}

	// The quad vertex data is uploaded once.
	if len(gl.BufferDatas) != 1 || len(gl.BufferDatas[0]) != 16 {
		t.Errorf("expected one 16-float vertex upload, got %v", gl.BufferDatas)
	}
}

func TestNew_RejectsOddDimensions(t *testing.T) {
	if _, err := New(mocks.NewGL(), logger.NewNoop(), 641, 480); err == nil {
		t.Error("expected error for odd width")
	}
}

func TestDraw_BeforeFirstUploadOnlyClears(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 64, 48)

	s.Draw()
	s.Draw()

	if gl.Clears != 2 {
		t.Errorf("expected 2 clears, got %d", gl.Clears)
	}
	if len(gl.Draws) != 0 {
		t.Errorf("expected no draw calls before first upload, got %d", len(gl.Draws))
	}
}

func TestUploadAndDraw(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 64, 48)

	frame := make([]byte, pipeline.PackedSize(64, 48))
	frame[0] = 0xAB
	if err := s.UploadFrame(frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.HasFrame() {
		t.Fatal("expected HasFrame after upload")
	}

	s.Draw()

	if len(gl.Draws) != 1 {
		t.Fatalf("expected 1 draw call, got %d", len(gl.Draws))
	}
	d := gl.Draws[0]
	if d.Mode != ports.GLTriangleStrip || d.First != 0 || d.Count != 4 {
		t.Errorf("expected triangle strip of 4 vertices, got %+v", d)
	}

	// The upload is a sub-image update into the existing storage.
	last := gl.Uploads[len(gl.Uploads)-1]
	if !last.Sub || last.X != 0 || last.Y != 0 || last.Width != 64 || last.Height != 48 {
		t.Errorf("expected full-frame TexSubImage2D, got %+v", last)
	}
	if last.Pixels[0] != 0xAB {
		t.Error("uploaded pixels do not match the frame")
	}
}

func TestUploadFrame_RepeatedUploadsAllocateNothing(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 64, 48)

	textures := len(gl.LiveTextures)
	buffers := len(gl.LiveBuffers)
	programs := len(gl.LivePrograms)

	frame := make([]byte, pipeline.PackedSize(64, 48))
	for i := 0; i < 3; i++ {
		if err := s.UploadFrame(frame); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	if len(gl.LiveTextures) != textures || len(gl.LiveBuffers) != buffers ||
		len(gl.LivePrograms) != programs {
		t.Errorf("uploads allocated GL objects: textures %d->%d, buffers %d->%d, programs %d->%d",
			textures, len(gl.LiveTextures), buffers, len(gl.LiveBuffers),
			programs, len(gl.LivePrograms))
	}

	// Storage allocation stays at the single initial TexImage2D.
	allocs := 0
	for _, up := range gl.Uploads {
		if !up.Sub {
			allocs++
		}
	}
	if allocs != 1 {
		t.Errorf("expected 1 storage allocation, got %d", allocs)
	}
}

func TestUploadFrame_SizeMismatch(t *testing.T) {
	s := newSurface(t, mocks.NewGL(), 64, 48)
	if err := s.UploadFrame(make([]byte, 10)); err == nil {
		t.Error("expected error for wrong frame size")
	}
	if s.HasFrame() {
		t.Error("failed upload must not set HasFrame")
	}
}

func TestHasFrame_MonotonicAcrossDraws(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 64, 48)

	if err := s.UploadFrame(make([]byte, pipeline.PackedSize(64, 48))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Draws do not consume the frame; with no new upload the quad keeps
	// being drawn with the existing texture.
	s.Draw()
	s.Draw()
	s.Draw()
	if len(gl.Draws) != 3 {
		t.Errorf("expected 3 draw calls, got %d", len(gl.Draws))
	}
}

func TestLinkFailure_DegradesToClearOnly(t *testing.T) {
	gl := mocks.NewGL()
	gl.FailLink = true
	s := newSurface(t, gl, 64, 48)

	if !s.Degraded() {
		t.Fatal("expected degraded mode after link failure")
	}
	// The failed program is cleaned up.
	if len(gl.LivePrograms) != 0 {
		t.Errorf("expected failed program deleted, got %d live", len(gl.LivePrograms))
	}

	// Uploads are silently skipped, draws clear only.
	if err := s.UploadFrame(make([]byte, pipeline.PackedSize(64, 48))); err != nil {
		t.Fatalf("degraded upload should be a no-op, got %v", err)
	}
	s.Draw()
	if gl.Clears != 1 {
		t.Errorf("expected 1 clear, got %d", gl.Clears)
	}
	if len(gl.Draws) != 0 {
		t.Error("degraded surface must not issue draw calls")
	}
}

func TestCompileFailure_Degrades(t *testing.T) {
	gl := mocks.NewGL()
	gl.FailCompile = "mediump"
	s := newSurface(t, gl, 64, 48)

	if !s.Degraded() {
		t.Fatal("expected degraded mode after fragment compile failure")
	}
	if len(gl.LiveShaders) != 0 {
		t.Errorf("expected all shaders deleted, got %d live", len(gl.LiveShaders))
	}
}

func TestResize_SetsViewportOnly(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 64, 48)
	allocations := len(gl.Uploads)

	s.Resize(800, 600)

	if got := gl.Viewports[len(gl.Viewports)-1]; got != [4]int32{0, 0, 800, 600} {
		t.Errorf("viewport: expected (0,0,800,600), got %v", got)
	}
	if len(gl.Uploads) != allocations {
		t.Error("resize must not touch texture storage")
	}
}

func TestRelease_Idempotent(t *testing.T) {
	gl := mocks.NewGL()
	s := newSurface(t, gl, 64, 48)

	s.Release()
	s.Release()

	if len(gl.LivePrograms) != 0 || len(gl.LiveTextures) != 0 || len(gl.LiveBuffers) != 0 {
		t.Error("expected all GL resources deleted")
	}
	if err := s.UploadFrame(make([]byte, pipeline.PackedSize(64, 48))); err == nil {
		t.Error("upload after release must fail")
	}
	clears := gl.Clears
	s.Draw()
	if gl.Clears != clears {
		t.Error("draw after release must be a no-op")
	}
}
