// Package gles implements ports.GL on top of the go-gl OpenGL ES 2.0
// bindings. Every method is a thin passthrough; all state decisions live in
// pkg/surface.
package gles

import (
	"strings"

	"github.com/go-gl/gl/v3.1/gles2"

	"github.com/user/camview/pkg/ports"
)

// GL is the driver-backed implementation of ports.GL. The GL context must
// be current on the calling thread; Init must run once after context
// creation.
type GL struct{}

// New creates the adapter.
func New() *GL {
	return &GL{}
}

// Init loads the GL function pointers for the current context.
func (g *GL) Init() error {
	return gles2.Init()
}

func (g *GL) CreateShader(shaderType uint32) uint32 {
	return gles2.CreateShader(shaderType)
}

func (g *GL) ShaderSource(shader uint32, source string) {
	csources, free := gles2.Strs(source + "\x00")
	gles2.ShaderSource(shader, 1, csources, nil)
	free()
}

func (g *GL) CompileShader(shader uint32) {
	gles2.CompileShader(shader)
}

func (g *GL) GetShaderi(shader, pname uint32) int32 {
	var value int32
	gles2.GetShaderiv(shader, pname, &value)
	return value
}

func (g *GL) ShaderInfoLog(shader uint32) string {
	var length int32
	gles2.GetShaderiv(shader, gles2.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gles2.GetShaderInfoLog(shader, length, nil, gles2.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteShader(shader uint32) {
	gles2.DeleteShader(shader)
}

func (g *GL) CreateProgram() uint32 {
	return gles2.CreateProgram()
}

func (g *GL) AttachShader(program, shader uint32) {
	gles2.AttachShader(program, shader)
}

func (g *GL) LinkProgram(program uint32) {
	gles2.LinkProgram(program)
}

func (g *GL) GetProgrami(program, pname uint32) int32 {
	var value int32
	gles2.GetProgramiv(program, pname, &value)
	return value
}

func (g *GL) ProgramInfoLog(program uint32) string {
	var length int32
	gles2.GetProgramiv(program, gles2.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gles2.GetProgramInfoLog(program, length, nil, gles2.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteProgram(program uint32) {
	gles2.DeleteProgram(program)
}

func (g *GL) UseProgram(program uint32) {
	gles2.UseProgram(program)
}

func (g *GL) AttribLocation(program uint32, name string) int32 {
	return gles2.GetAttribLocation(program, gles2.Str(name+"\x00"))
}

func (g *GL) UniformLocation(program uint32, name string) int32 {
	return gles2.GetUniformLocation(program, gles2.Str(name+"\x00"))
}

func (g *GL) Uniform1i(location, value int32) {
	gles2.Uniform1i(location, value)
}

func (g *GL) GenTexture() uint32 {
	var texture uint32
	gles2.GenTextures(1, &texture)
	return texture
}

func (g *GL) BindTexture(target, texture uint32) {
	gles2.BindTexture(target, texture)
}

func (g *GL) TexParameteri(target, pname uint32, param int32) {
	gles2.TexParameteri(target, pname, param)
}

func (g *GL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	if len(pixels) == 0 {
		gles2.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, nil)
		return
	}
	gles2.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gles2.Ptr(pixels))
}

func (g *GL) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	gles2.TexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, gles2.Ptr(pixels))
}

func (g *GL) DeleteTexture(texture uint32) {
	gles2.DeleteTextures(1, &texture)
}

func (g *GL) ActiveTexture(texture uint32) {
	gles2.ActiveTexture(texture)
}

func (g *GL) PixelStorei(pname uint32, param int32) {
	gles2.PixelStorei(pname, param)
}

func (g *GL) GenBuffer() uint32 {
	var buffer uint32
	gles2.GenBuffers(1, &buffer)
	return buffer
}

func (g *GL) BindBuffer(target, buffer uint32) {
	gles2.BindBuffer(target, buffer)
}

func (g *GL) BufferData(target uint32, data []float32, usage uint32) {
	gles2.BufferData(target, len(data)*4, gles2.Ptr(data), usage)
}

func (g *GL) DeleteBuffer(buffer uint32) {
	gles2.DeleteBuffers(1, &buffer)
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	gles2.EnableVertexAttribArray(index)
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gles2.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (g *GL) DisableVertexAttribArray(index uint32) {
	gles2.DisableVertexAttribArray(index)
}

func (g *GL) Viewport(x, y, width, height int32) {
	gles2.Viewport(x, y, width, height)
}

func (g *GL) ClearColor(red, green, blue, alpha float32) {
	gles2.ClearColor(red, green, blue, alpha)
}

func (g *GL) Clear(mask uint32) {
	gles2.Clear(mask)
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	gles2.DrawArrays(mode, first, count)
}

var _ ports.GL = (*GL)(nil)
