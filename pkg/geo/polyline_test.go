package geo

import (
	"testing"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePath(t *testing.T) {
	path := []da.GridCell{
		da.NewGridCell(0, 0), da.NewGridCell(0, 1), da.NewGridCell(0, 2),
		da.NewGridCell(1, 3), da.NewGridCell(2, 3),
	}

	encoded := EncodePath(path)
	assert.NotEmpty(t, encoded)

	decoded, err := DecodePath(encoded)
	require.NoError(t, err)
	assert.Equal(t, path, decoded)
}

func TestEncodeEmptyPath(t *testing.T) {
	assert.Equal(t, "", EncodePath(nil))

	decoded, err := DecodePath("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
