package state

import (
	"errors"
	"fmt"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/polygon/glm"
	"github.com/oliverbestmann/polygon/pulse"
)

// Vertex is the gpu representation of a single vertex of the mesh.
type Vertex struct {
	_        structs.HostLayout
	Position glm.Vec3f
	Color    glm.Vec3f
}

var vertexLayout = pulse.VertexLayout{
	Stride:         uint64(unsafe.Sizeof(Vertex{})),
	PositionOffset: uint64(unsafe.Offsetof(Vertex{}.Position)),
	ColorOffset:    uint64(unsafe.Offsetof(Vertex{}.Color)),
}

var purple = glm.Vec3f{0.5, 0.0, 0.5}

// Vertices of a pentagon centered around the origin
var Vertices = [...]Vertex{
	{Position: glm.Vec3f{-0.0868241, 0.49240386, 0.0}, Color: purple},
	{Position: glm.Vec3f{-0.49513406, 0.06958647, 0.0}, Color: purple},
	{Position: glm.Vec3f{-0.21918549, -0.44939706, 0.0}, Color: purple},
	{Position: glm.Vec3f{0.35966998, -0.3473291, 0.0}, Color: purple},
	{Position: glm.Vec3f{0.44147372, 0.2347359, 0.0}, Color: purple},
}

// Indices triangulate the pentagon into a fan around the last vertex
var Indices = [...]uint16{
	0, 1, 4,
	1, 2, 4,
	2, 3, 4,
}

var errBackFacing = errors.New("triangle is not counter clockwise")

// checkMesh verifies that the indices describe complete triangles
// referencing existing vertices, all facing the viewer.
func checkMesh(vertices []Vertex, indices []uint16) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of three", len(indices))
	}

	for idx := 0; idx < len(indices); idx += 3 {
		var corners [3]glm.Vec3f

		for c, vertexIdx := range indices[idx : idx+3] {
			if int(vertexIdx) >= len(vertices) {
				return fmt.Errorf("index %d references vertex %d of %d", idx+c, vertexIdx, len(vertices))
			}

			corners[c] = vertices[vertexIdx].Position
		}

		if !counterClockwise(corners[0], corners[1], corners[2]) {
			return fmt.Errorf("triangle %d: %w", idx/3, errBackFacing)
		}
	}

	return nil
}

// counterClockwise reports whether the triangle abc winds counter clockwise
// when looking at the xy plane.
func counterClockwise(a, b, c glm.Vec3f) bool {
	normal := b.Sub(a).Cross(c.Sub(a))
	return normal[2] > 0
}
