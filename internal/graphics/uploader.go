package graphics

import (
	"fmt"
	"unsafe"

	"chunk-mesher/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type glMesh struct {
	vao, vbo, ibo uint32
}

// GLUploader stores chunk mesh parts in vertex array objects. Attribute 0 is
// the position, 1 the texture coordinate and 2 the normalised RGBA colour.
// It must only be used on the thread owning the GL context.
type GLUploader struct {
	meshes map[meshing.Handle]glMesh
	next   meshing.Handle
}

func NewGLUploader() *GLUploader {
	return &GLUploader{meshes: make(map[meshing.Handle]glMesh)}
}

func (u *GLUploader) Upload(vertices []meshing.Vertex, indices []uint16) (meshing.Handle, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("gl upload: empty part")
	}
	var m glMesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	stride := int32(unsafe.Sizeof(meshing.Vertex{}))
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(meshing.Vertex{}.Pos))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(meshing.Vertex{}.UV))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(meshing.Vertex{}.Col))

	gl.BindVertexArray(0)

	if err := gl.GetError(); err != gl.NO_ERROR {
		u.free(m)
		return 0, fmt.Errorf("gl upload: error 0x%x", err)
	}

	u.next++
	u.meshes[u.next] = m
	return u.next, nil
}

func (u *GLUploader) Draw(h meshing.Handle, indexCount int) {
	m, ok := u.meshes[h]
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

func (u *GLUploader) Release(h meshing.Handle) {
	if m, ok := u.meshes[h]; ok {
		u.free(m)
		delete(u.meshes, h)
	}
}

// Live returns the number of buffers not yet released.
func (u *GLUploader) Live() int {
	return len(u.meshes)
}

// Dispose frees every remaining buffer.
func (u *GLUploader) Dispose() {
	for h, m := range u.meshes {
		u.free(m)
		delete(u.meshes, h)
	}
}

func (u *GLUploader) free(m glMesh) {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ibo != 0 {
		gl.DeleteBuffers(1, &m.ibo)
	}
}
