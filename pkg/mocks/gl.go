package mocks

import (
	"fmt"
	"strings"

	"github.com/user/camview/pkg/ports"
)

// TexUpload records one TexImage2D or TexSubImage2D call.
type TexUpload struct {
	Sub           bool
	Level         int32
	X, Y          int32
	Width, Height int32
	Format        uint32
	Pixels        []byte
}

// DrawCall records one DrawArrays call.
type DrawCall struct {
	Mode  uint32
	First int32
	Count int32
}

// GL is a recording fake of the ports.GL interface. It hands out sequential
// object names, tracks which ones are alive, and records the calls the
// rendering surface makes so tests can assert on the exact GL traffic.
// Compile and link outcomes are scriptable per call.
type GL struct {
	nextName uint32

	// Scripted outcomes. FailCompile marks shader sources (by substring)
	// whose compilation should report failure; FailLink fails every link.
	FailCompile string
	FailLink    bool

	ShaderSources  map[uint32]string
	LiveShaders    map[uint32]bool
	LivePrograms   map[uint32]bool
	LiveTextures   map[uint32]bool
	LiveBuffers    map[uint32]bool
	AttachedTo     map[uint32][]uint32
	CurrentProgram uint32
	BoundTexture   uint32
	BoundBuffer    uint32

	Uploads     []TexUpload
	Draws       []DrawCall
	Viewports   [][4]int32
	Clears      int
	ClearColors [][4]float32
	PixelStore  map[uint32]int32
	BufferDatas [][]float32
	TexParams   map[uint32]int32

	// Calls is the flat ordered log of every method invocation.
	Calls []string
}

// NewGL creates a recording GL fake.
func NewGL() *GL {
	return &GL{
		nextName:      1,
		ShaderSources: make(map[uint32]string),
		LiveShaders:   make(map[uint32]bool),
		LivePrograms:  make(map[uint32]bool),
		LiveTextures:  make(map[uint32]bool),
		LiveBuffers:   make(map[uint32]bool),
		AttachedTo:    make(map[uint32][]uint32),
		PixelStore:    make(map[uint32]int32),
		TexParams:     make(map[uint32]int32),
	}
}

func (g *GL) log(format string, args ...interface{}) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GL) name() uint32 {
	n := g.nextName
	g.nextName++
	return n
}

func (g *GL) CreateShader(shaderType uint32) uint32 {
	n := g.name()
	g.LiveShaders[n] = true
	g.log("CreateShader(%#x)=%d", shaderType, n)
	return n
}

func (g *GL) ShaderSource(shader uint32, source string) {
	g.ShaderSources[shader] = source
	g.log("ShaderSource(%d)", shader)
}

func (g *GL) CompileShader(shader uint32) {
	g.log("CompileShader(%d)", shader)
}

func (g *GL) GetShaderi(shader, pname uint32) int32 {
	if pname == ports.GLCompileStatus {
		if g.FailCompile != "" && strings.Contains(g.ShaderSources[shader], g.FailCompile) {
			return 0
		}
		return 1
	}
	return 0
}

func (g *GL) ShaderInfoLog(shader uint32) string {
	return "mock shader info log"
}

func (g *GL) DeleteShader(shader uint32) {
	delete(g.LiveShaders, shader)
	g.log("DeleteShader(%d)", shader)
}

func (g *GL) CreateProgram() uint32 {
	n := g.name()
	g.LivePrograms[n] = true
	g.log("CreateProgram()=%d", n)
	return n
}

func (g *GL) AttachShader(program, shader uint32) {
	g.AttachedTo[program] = append(g.AttachedTo[program], shader)
	g.log("AttachShader(%d,%d)", program, shader)
}

func (g *GL) LinkProgram(program uint32) {
	g.log("LinkProgram(%d)", program)
}

func (g *GL) GetProgrami(program, pname uint32) int32 {
	if pname == ports.GLLinkStatus {
		if g.FailLink {
			return 0
		}
		return 1
	}
	return 0
}

func (g *GL) ProgramInfoLog(program uint32) string {
	return "mock program info log"
}

func (g *GL) DeleteProgram(program uint32) {
	delete(g.LivePrograms, program)
	g.log("DeleteProgram(%d)", program)
}

func (g *GL) UseProgram(program uint32) {
	g.CurrentProgram = program
	g.log("UseProgram(%d)", program)
}

func (g *GL) AttribLocation(program uint32, name string) int32 {
	g.log("AttribLocation(%d,%s)", program, name)
	// Stable nonzero slots: position 0, texcoord 1.
	if name == "aTexCoord" {
		return 1
	}
	return 0
}

func (g *GL) UniformLocation(program uint32, name string) int32 {
	g.log("UniformLocation(%d,%s)", program, name)
	return 2
}

func (g *GL) Uniform1i(location, value int32) {
	g.log("Uniform1i(%d,%d)", location, value)
}

func (g *GL) GenTexture() uint32 {
	n := g.name()
	g.LiveTextures[n] = true
	g.log("GenTexture()=%d", n)
	return n
}

func (g *GL) BindTexture(target, texture uint32) {
	g.BoundTexture = texture
	g.log("BindTexture(%#x,%d)", target, texture)
}

func (g *GL) TexParameteri(target, pname uint32, param int32) {
	g.TexParams[pname] = param
	g.log("TexParameteri(%#x,%#x,%d)", target, pname, param)
}

func (g *GL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	g.Uploads = append(g.Uploads, TexUpload{
		Level: level, Width: width, Height: height, Format: format,
		Pixels: append([]byte(nil), pixels...),
	})
	g.log("TexImage2D(%dx%d)", width, height)
}

func (g *GL) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	g.Uploads = append(g.Uploads, TexUpload{
		Sub: true, Level: level, X: xoffset, Y: yoffset,
		Width: width, Height: height, Format: format,
		Pixels: append([]byte(nil), pixels...),
	})
	g.log("TexSubImage2D(%d,%d,%dx%d)", xoffset, yoffset, width, height)
}

func (g *GL) DeleteTexture(texture uint32) {
	delete(g.LiveTextures, texture)
	g.log("DeleteTexture(%d)", texture)
}

func (g *GL) ActiveTexture(texture uint32) {
	g.log("ActiveTexture(%#x)", texture)
}

func (g *GL) PixelStorei(pname uint32, param int32) {
	g.PixelStore[pname] = param
	g.log("PixelStorei(%#x,%d)", pname, param)
}

func (g *GL) GenBuffer() uint32 {
	n := g.name()
	g.LiveBuffers[n] = true
	g.log("GenBuffer()=%d", n)
	return n
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.BoundBuffer = buffer
	g.log("BindBuffer(%#x,%d)", target, buffer)
}

func (g *GL) BufferData(target uint32, data []float32, usage uint32) {
	g.BufferDatas = append(g.BufferDatas, append([]float32(nil), data...))
	g.log("BufferData(%d floats)", len(data))
}

func (g *GL) DeleteBuffer(buffer uint32) {
	delete(g.LiveBuffers, buffer)
	g.log("DeleteBuffer(%d)", buffer)
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.log("EnableVertexAttribArray(%d)", index)
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	g.log("VertexAttribPointer(%d,%d,stride=%d,offset=%d)", index, size, stride, offset)
}

func (g *GL) DisableVertexAttribArray(index uint32) {
	g.log("DisableVertexAttribArray(%d)", index)
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.Viewports = append(g.Viewports, [4]int32{x, y, width, height})
	g.log("Viewport(%d,%d,%d,%d)", x, y, width, height)
}

func (g *GL) ClearColor(red, green, blue, alpha float32) {
	g.ClearColors = append(g.ClearColors, [4]float32{red, green, blue, alpha})
	g.log("ClearColor")
}

func (g *GL) Clear(mask uint32) {
	g.Clears++
	g.log("Clear(%#x)", mask)
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.Draws = append(g.Draws, DrawCall{Mode: mode, First: first, Count: count})
	g.log("DrawArrays(%#x,%d,%d)", mode, first, count)
}

var _ ports.GL = (*GL)(nil)
