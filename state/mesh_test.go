package state

import (
	"testing"

	"github.com/oliverbestmann/polygon/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPentagonIsValid(t *testing.T) {
	require.NoError(t, checkMesh(Vertices[:], Indices[:]))

	for _, vertex := range Vertices {
		assert.Equal(t, glm.Vec3f{0.5, 0, 0.5}, vertex.Color)
		assert.Zero(t, vertex.Position[2])
	}
}

func TestCheckMesh(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint16
		wantErr bool
	}{
		{name: "empty", indices: nil},
		{name: "incomplete triangle", indices: []uint16{0, 1}, wantErr: true},
		{name: "out of range", indices: []uint16{0, 1, 5}, wantErr: true},
		{name: "clockwise", indices: []uint16{0, 4, 1}, wantErr: true},
		{name: "single triangle", indices: []uint16{0, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMesh(Vertices[:], tt.indices)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCounterClockwise(t *testing.T) {
	a := glm.Vec3f{0, 0, 0}
	b := glm.Vec3f{1, 0, 0}
	c := glm.Vec3f{0, 1, 0}

	assert.True(t, counterClockwise(a, b, c))
	assert.False(t, counterClockwise(a, c, b))

	// degenerate triangles have no front face
	assert.False(t, counterClockwise(a, b, b))
}
