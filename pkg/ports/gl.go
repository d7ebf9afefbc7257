package ports

// OpenGL ES 2.0 enum values used by the rendering surface. The values are
// fixed by the GLES specification, so adapters can pass them straight
// through to the driver bindings.
const (
	GLFragmentShader   uint32 = 0x8B30
	GLVertexShader     uint32 = 0x8B31
	GLCompileStatus    uint32 = 0x8B81
	GLLinkStatus       uint32 = 0x8B82
	GLTexture2D        uint32 = 0x0DE1
	GLTextureMagFilter uint32 = 0x2800
	GLTextureMinFilter uint32 = 0x2801
	GLTextureWrapS     uint32 = 0x2802
	GLTextureWrapT     uint32 = 0x2803
	GLLinear           int32  = 0x2601
	GLClampToEdge      int32  = 0x812F
	GLRGBA             uint32 = 0x1908
	GLUnsignedByte     uint32 = 0x1401
	GLFloat            uint32 = 0x1406
	GLArrayBuffer      uint32 = 0x8892
	GLStaticDraw       uint32 = 0x88E4
	GLColorBufferBit   uint32 = 0x00004000
	GLTriangleStrip    uint32 = 0x0005
	GLTexture0         uint32 = 0x84C0
	GLUnpackAlignment  uint32 = 0x0CF5
	GLTrue             int32  = 1
)

// GL abstracts the OpenGL ES 2.0 calls the rendering surface issues. The
// method set mirrors the driver API one call per method so the surface's
// state machine can be exercised against a recording fake in tests.
//
// All methods must be called from the thread that owns the GL context.
type GL interface {
	// Shaders and programs
	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program, pname uint32) int32
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1i(location, value int32)

	// Textures
	GenTexture() uint32
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte)
	DeleteTexture(texture uint32)
	ActiveTexture(texture uint32)
	PixelStorei(pname uint32, param int32)

	// Buffers and vertex attributes
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	DisableVertexAttribArray(index uint32)

	// Frame operations
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
}
