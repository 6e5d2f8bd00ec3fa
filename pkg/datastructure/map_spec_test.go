package datastructure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMapSpec(t *testing.T) {
	input := `
name: warehouse
rows:
  - "0000"
  - "0110"
  - "0000"
start: [0, 0]
end: [2, 3]
vehicle: {length: 2.0, width: 0.8}
`
	spec, err := DecodeMapSpec(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "warehouse", spec.Name)

	grid, err := spec.Grid()
	require.NoError(t, err)
	assert.Equal(t, "0000\n0110\n0000", grid.String())

	start, ok, err := spec.StartCell()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, NewGridCell(0, 0), start)

	end, ok, err := spec.EndCell()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, NewGridCell(2, 3), end)

	require.NotNil(t, spec.Vehicle)
	assert.Equal(t, 2.0, spec.Vehicle.Length)
	assert.Equal(t, 0.8, spec.Vehicle.Width)
}

func TestDecodeMapSpecWithoutEndpoints(t *testing.T) {
	spec, err := DecodeMapSpec(strings.NewReader("name: tiny\nrows: [\"0\"]\n"))
	require.NoError(t, err)

	_, ok, err := spec.StartCell()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, spec.Vehicle)
}

func TestDecodeMapSpecInvalid(t *testing.T) {
	_, err := DecodeMapSpec(strings.NewReader("name: [unterminated"))
	assert.ErrorIs(t, err, ErrInvalidMap)

	spec, err := DecodeMapSpec(strings.NewReader("name: bad\nrows: [\"0\"]\nstart: [1, 2, 3]\n"))
	require.NoError(t, err)
	_, _, err = spec.StartCell()
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}
