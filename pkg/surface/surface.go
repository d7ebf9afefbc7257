// Package surface implements the GPU-resident rendering state machine: a
// full-screen textured quad that presents the latest processed frame.
package surface

import (
	"fmt"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

const vertexShaderSource = `attribute vec2 aPosition;
attribute vec2 aTexCoord;
varying vec2 vTexCoord;
void main() {
    gl_Position = vec4(aPosition, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
`

const fragmentShaderSource = `precision mediump float;
varying vec2 vTexCoord;
uniform sampler2D uTexture;
void main() {
    gl_FragColor = texture2D(uTexture, vTexCoord);
}
`

// quadVertices is the interleaved position/texcoord data for a full-screen
// triangle strip. Texture V is flipped so row 0 of the uploaded frame lands
// at the top of the screen.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, 1, 1, 0,
}

// Surface owns the GL program, texture, and vertex buffer used to present
// frames. It is created against a live GL context and must only be used from
// the thread that owns that context.
//
// A shader or link failure does not fail construction: the surface enters a
// degraded mode where Draw clears the screen and does nothing else, so the
// host keeps running with a black view instead of crashing.
type Surface struct {
	gl     ports.GL
	logger ports.Logger

	width  int
	height int

	program     uint32
	texture     uint32
	vbo         uint32
	posAttrib   int32
	texAttrib   int32
	samplerLoc  int32
	degraded    bool
	hasFrame    bool
	released    bool
	uploadCount int
}

// New creates the surface and allocates all GL resources for frames of the
// given fixed dimensions. The GL context must be current on the calling
// thread.
func New(gl ports.GL, logger ports.Logger, width, height int) (*Surface, error) {
	if err := pipeline.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	s := &Surface{
		gl:     gl,
		logger: logger.WithComponent("surface"),
		width:  width,
		height: height,
	}
	s.initProgram()
	s.initTexture()
	s.initQuad()
	s.gl.ClearColor(0, 0, 0, 1)
	return s, nil
}

// initProgram compiles and links the shader pair. On failure the program
// stays 0 and the surface degrades instead of erroring, matching the
// fail-soft policy for the render path.
func (s *Surface) initProgram() {
	vs, err := s.compileShader(ports.GLVertexShader, vertexShaderSource)
	if err != nil {
		s.logger.Error("Failed to compile shader: %s", err.Error())
		s.degraded = true
		return
	}
	fs, err := s.compileShader(ports.GLFragmentShader, fragmentShaderSource)
	if err != nil {
		s.gl.DeleteShader(vs)
		s.logger.Error("Failed to compile shader: %s", err.Error())
		s.degraded = true
		return
	}

	program := s.gl.CreateProgram()
	s.gl.AttachShader(program, vs)
	s.gl.AttachShader(program, fs)
	s.gl.LinkProgram(program)

	// Shaders are owned by the program after linking.
	s.gl.DeleteShader(vs)
	s.gl.DeleteShader(fs)

	if s.gl.GetProgrami(program, ports.GLLinkStatus) != ports.GLTrue {
		info := s.gl.ProgramInfoLog(program)
		s.gl.DeleteProgram(program)
		s.logger.Error("Failed to link program: %s", info)
		s.degraded = true
		return
	}

	s.program = program
	s.posAttrib = s.gl.AttribLocation(program, "aPosition")
	s.texAttrib = s.gl.AttribLocation(program, "aTexCoord")
	s.samplerLoc = s.gl.UniformLocation(program, "uTexture")
	s.logger.Debug("Shader program linked")
}

func (s *Surface) compileShader(shaderType uint32, source string) (uint32, error) {
	shader := s.gl.CreateShader(shaderType)
	s.gl.ShaderSource(shader, source)
	s.gl.CompileShader(shader)
	if s.gl.GetShaderi(shader, ports.GLCompileStatus) != ports.GLTrue {
		info := s.gl.ShaderInfoLog(shader)
		s.gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader type %#x: %s", shaderType, info)
	}
	return shader, nil
}

// initTexture allocates the frame texture once at full processing
// resolution; uploads later use TexSubImage2D into this storage.
func (s *Surface) initTexture() {
	s.texture = s.gl.GenTexture()
	s.gl.BindTexture(ports.GLTexture2D, s.texture)
	s.gl.TexParameteri(ports.GLTexture2D, ports.GLTextureMinFilter, ports.GLLinear)
	s.gl.TexParameteri(ports.GLTexture2D, ports.GLTextureMagFilter, ports.GLLinear)
	s.gl.TexParameteri(ports.GLTexture2D, ports.GLTextureWrapS, ports.GLClampToEdge)
	s.gl.TexParameteri(ports.GLTexture2D, ports.GLTextureWrapT, ports.GLClampToEdge)
	// Tightly packed rows regardless of width.
	s.gl.PixelStorei(ports.GLUnpackAlignment, 1)
	s.gl.TexImage2D(ports.GLTexture2D, 0, int32(ports.GLRGBA),
		int32(s.width), int32(s.height), ports.GLRGBA, ports.GLUnsignedByte, nil)
}

func (s *Surface) initQuad() {
	s.vbo = s.gl.GenBuffer()
	s.gl.BindBuffer(ports.GLArrayBuffer, s.vbo)
	s.gl.BufferData(ports.GLArrayBuffer, quadVertices, ports.GLStaticDraw)
}

// Resize adjusts the viewport to the new drawable size. Texture storage is
// unaffected; the quad stretches to fill whatever the viewport is.
func (s *Surface) Resize(width, height int) {
	s.gl.Viewport(0, 0, int32(width), int32(height))
	s.logger.Debug("Viewport set to %dx%d", width, height)
}

// UploadFrame transfers one packed RGBA frame into the texture and marks
// the surface ready to draw it. The frame must match the configured
// dimensions exactly.
func (s *Surface) UploadFrame(rgba []byte) error {
	if s.released {
		return fmt.Errorf("surface released")
	}
	if s.degraded {
		return nil
	}
	if need := pipeline.PackedSize(s.width, s.height); len(rgba) != need {
		return fmt.Errorf("frame size mismatch: need %d bytes, have %d", need, len(rgba))
	}
	s.gl.BindTexture(ports.GLTexture2D, s.texture)
	s.gl.TexSubImage2D(ports.GLTexture2D, 0, 0, 0,
		int32(s.width), int32(s.height), ports.GLRGBA, ports.GLUnsignedByte, rgba)
	s.hasFrame = true
	s.uploadCount++
	return nil
}

// HasFrame reports whether at least one frame has ever been uploaded. The
// flag is monotonic until Release.
func (s *Surface) HasFrame() bool {
	return s.hasFrame
}

// Draw clears the screen and, once a frame has been uploaded, draws the
// textured quad. Before the first upload (and in degraded mode) the clear
// is the whole frame, so the host sees black rather than stale or undefined
// texture contents.
func (s *Surface) Draw() {
	if s.released {
		return
	}
	s.gl.Clear(ports.GLColorBufferBit)
	if s.degraded || !s.hasFrame {
		return
	}

	s.gl.UseProgram(s.program)
	s.gl.ActiveTexture(ports.GLTexture0)
	s.gl.BindTexture(ports.GLTexture2D, s.texture)
	s.gl.Uniform1i(s.samplerLoc, 0)

	s.gl.BindBuffer(ports.GLArrayBuffer, s.vbo)
	stride := int32(4 * 4) // 4 floats per vertex
	s.gl.EnableVertexAttribArray(uint32(s.posAttrib))
	s.gl.VertexAttribPointer(uint32(s.posAttrib), 2, ports.GLFloat, false, stride, 0)
	s.gl.EnableVertexAttribArray(uint32(s.texAttrib))
	s.gl.VertexAttribPointer(uint32(s.texAttrib), 2, ports.GLFloat, false, stride, 2*4)

	s.gl.DrawArrays(ports.GLTriangleStrip, 0, 4)

	s.gl.DisableVertexAttribArray(uint32(s.posAttrib))
	s.gl.DisableVertexAttribArray(uint32(s.texAttrib))
}

// Degraded reports whether the surface fell back to clear-only draws after
// a shader or link failure.
func (s *Surface) Degraded() bool {
	return s.degraded
}

// UploadCount returns the number of successful texture uploads.
func (s *Surface) UploadCount() int {
	return s.uploadCount
}

// Release deletes all GL resources. Safe to call more than once; after
// Release the surface ignores draws and rejects uploads.
func (s *Surface) Release() {
	if s.released {
		return
	}
	if s.program != 0 {
		s.gl.DeleteProgram(s.program)
		s.program = 0
	}
	if s.texture != 0 {
		s.gl.DeleteTexture(s.texture)
		s.texture = 0
	}
	if s.vbo != 0 {
		s.gl.DeleteBuffer(s.vbo)
		s.vbo = 0
	}
	s.hasFrame = false
	s.released = true
}
