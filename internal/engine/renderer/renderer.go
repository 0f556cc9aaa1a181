// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vrm/internal/engine/debug"
	"github.com/Faultbox/midgard-vrm/internal/engine/shader"
	"github.com/Faultbox/midgard-vrm/internal/logger"
	"github.com/Faultbox/midgard-vrm/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FovY   float32 // Vertical field of view in radians
	Near   float32
	Far    float32
}

// Renderer draws colored line lists.
type Renderer struct {
	config Config

	program *shader.Program

	lineVAO uint32
	lineVBO uint32
	// capacity of lineVBO in bytes
	lineCap int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	var err error
	r.program, err = shader.NewProgram(shader.LineVertex, shader.LineFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}

	r.createLineBuffer()
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() math.Mat4 {
	return Projection(r.config)
}

// Projection returns the perspective matrix described by cfg.
func Projection(cfg Config) math.Mat4 {
	aspect := float32(1)
	if cfg.Height > 0 {
		aspect = float32(cfg.Width) / float32(cfg.Height)
	}
	return math.Perspective(cfg.FovY, aspect, cfg.Near, cfg.Far)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawLines draws a line list with the given view matrix.
func (r *Renderer) DrawLines(lines *debug.Lines, view math.Mat4) {
	data := lines.Data()
	if len(data) == 0 {
		return
	}

	size := len(data) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if size > r.lineCap {
		// Grow geometrically so per-frame gizmos do not reallocate every frame
		r.lineCap = size * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.lineCap, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&data[0]))

	r.program.Use()
	r.program.SetMat4("uMVP", r.Projection().Mul(view))

	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(lines.VertexCount()))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// createLineBuffer sets up the VAO for interleaved position/color vertices.
func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	stride := int32(debug.FloatsPerVertex * 4)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("line buffer created",
		zap.Uint32("vao", r.lineVAO),
		zap.Uint32("vbo", r.lineVBO),
	)
}
