package blocks

import (
	"log"

	"chunk-mesher/internal/config"
	"chunk-mesher/internal/graphics"
	renderer "chunk-mesher/internal/graphics/renderer"
	"chunk-mesher/internal/meshing"
	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Blocks implements block rendering feature. Each frame it queues dirty
// chunks for meshing, uploads a bounded number of finished meshes and draws
// the resident chunks page by page: the opaque pass first, then the
// translucent pass with blending.
type Blocks struct {
	scene    *scene.Scene
	shader   *graphics.Shader
	uploader *graphics.GLUploader
	streamer *meshing.ChunkStreamer
	pages    graphics.AtlasPages

	pagesDirty bool
}

// NewBlocks creates a new blocks renderable
func NewBlocks(s *scene.Scene) *Blocks {
	return &Blocks{scene: s}
}

// Init compiles the shader, uploads the atlas pages and creates the chunk
// streamer. Shaders in the configured directory override the built-in ones.
func (b *Blocks) Init() error {
	var err error
	if dir := b.scene.Config.Viewer.ShaderDir; dir != "" {
		vert, frag := shaderPaths(dir)
		b.shader, err = graphics.NewShaderFromFiles(vert, frag)
	} else {
		b.shader, err = graphics.NewShader(vertexSource, fragmentSource)
	}
	if err != nil {
		return err
	}

	if err := b.pages.Upload(b.scene.Pages); err != nil {
		b.shader.Delete()
		return err
	}

	b.uploader = graphics.NewGLUploader()
	b.streamer = b.scene.NewStreamer(b.uploader)
	return nil
}

// ReloadPages uploads the scene's atlas pages again before the next frame,
// e.g. after a relayout.
func (b *Blocks) ReloadPages() {
	b.pagesDirty = true
}

// Render renders all visible blocks
func (b *Blocks) Render(ctx renderer.RenderContext) {
	if b.pagesDirty {
		if err := b.pages.Upload(b.scene.Pages); err != nil {
			log.Printf("blocks: %v", err)
		}
		b.pagesDirty = false
	}

	b.streamer.QueueDirty(config.GetLighting())
	b.streamer.ProcessMeshResults(b.scene.Config.Mesher.ResultsPerFrame)

	if ctx.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	func() {
		defer profiling.Track("renderer.renderBlocks")()
		b.renderBlocksInternal(ctx)
	}()
	glCheckError("blocks")
}

func (b *Blocks) renderBlocksInternal(ctx renderer.RenderContext) {
	b.shader.Use()
	b.shader.SetMatrix4("proj", &ctx.Proj[0])
	b.shader.SetMatrix4("view", &ctx.View[0])
	b.shader.SetInt("atlas", 0)
	b.shader.SetVector3("fogColor", 0.53, 0.81, 0.92)
	far := float32(max(b.scene.World.SizeX, b.scene.World.SizeZ))
	b.shader.SetFloat("fogStart", far*0.6)
	b.shader.SetFloat("fogEnd", far*1.2)

	// sprites are seen from both sides
	gl.Disable(gl.CULL_FACE)
	b.shader.SetBool("alphaTest", true)
	for page := 0; page < b.pages.Count(); page++ {
		b.pages.Bind(page)
		b.streamer.DrawPage(meshing.PassOpaque, page)
	}
	gl.Enable(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	b.shader.SetBool("alphaTest", false)
	for page := 0; page < b.pages.Count(); page++ {
		b.pages.Bind(page)
		b.streamer.DrawPage(meshing.PassTranslucent, page)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
}

// Stats returns the chunk streamer statistics.
func (b *Blocks) Stats() meshing.StreamerStats {
	return b.streamer.Stats()
}

// Dispose cleans up OpenGL resources
func (b *Blocks) Dispose() {
	if b.streamer != nil {
		b.streamer.Close()
	}
	if b.uploader != nil {
		b.uploader.Dispose()
	}
	b.pages.Dispose()
	if b.shader != nil {
		b.shader.Delete()
	}
}

func (b *Blocks) SetViewport(width, height int) {}

func glCheckError(label string) {
	if err := gl.GetError(); err != gl.NO_ERROR {
		log.Printf("gl error %s: 0x%x", label, err)
	}
}
