package wireframe

import (
	"chunk-mesher/internal/graphics"
	renderer "chunk-mesher/internal/graphics/renderer"
	"chunk-mesher/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vertexSource = `#version 410 core
layout(location = 0) in vec3 aPos;
uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;
void main() {
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const fragmentSource = `#version 410 core
uniform vec3 color;
out vec4 FragColor;
void main() {
	FragColor = vec4(color, 1.0);
}
`

// Wireframe outlines the block the camera is aimed at
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32

	// Target is the outlined block, shown while HasTarget is set.
	Target    [3]int
	HasTarget bool
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init initializes the wireframe rendering system
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(vertexSource, fragmentSource)
	if err != nil {
		return err
	}

	w.setupWireframeVAO()
	return nil
}

// Render renders the outline of the target block
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if w.HasTarget {
		func() {
			defer profiling.Track("renderer.renderHighlightedBlock")()
			w.renderHighlightedBlock(w.Target, ctx.View, ctx.Proj)
		}()
	}
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}

func (w *Wireframe) SetViewport(width, height int) {}

func (w *Wireframe) setupWireframeVAO() {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)

	// unit cube edges, block (x, y, z) spans [x, x+1)
	vertices := []float32{
		// Bottom face
		0, 0, 0, 1, 0, 0,
		1, 0, 0, 1, 0, 1,
		1, 0, 1, 0, 0, 1,
		0, 0, 1, 0, 0, 0,

		// Top face
		0, 1, 0, 1, 1, 0,
		1, 1, 0, 1, 1, 1,
		1, 1, 1, 0, 1, 1,
		0, 1, 1, 0, 1, 0,

		// Connecting edges
		0, 0, 0, 0, 1, 0,
		1, 0, 0, 1, 1, 0,
		1, 0, 1, 1, 1, 1,
		0, 0, 1, 0, 1, 1,
	}

	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
}

func (w *Wireframe) renderHighlightedBlock(blockPos [3]int, view, projection mgl32.Mat4) {
	w.shader.Use()
	w.shader.SetMatrix4("proj", &projection[0])
	w.shader.SetMatrix4("view", &view[0])

	// slightly enlarged around the block centre to avoid z-fighting
	centre := mgl32.Vec3{float32(blockPos[0]) + 0.5, float32(blockPos[1]) + 0.5, float32(blockPos[2]) + 0.5}
	model := mgl32.Translate3D(centre.X(), centre.Y(), centre.Z()).
		Mul4(mgl32.Scale3D(1.01, 1.01, 1.01)).
		Mul4(mgl32.Translate3D(-0.5, -0.5, -0.5))

	w.shader.SetMatrix4("model", &model[0])
	w.shader.SetVector3("color", 0.0, 0.0, 0.0) // Black outline

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, 24) // 24 vertices for cube wireframe
	gl.BindVertexArray(0)
}
