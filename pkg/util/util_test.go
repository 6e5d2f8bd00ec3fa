package util

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("grid has no free cells")
	err := WrapErrorf(orig, ErrBadParamInput, "map %q", "warehouse")

	assert.Equal(t, `map "warehouse": grid has no free cells`, err.Error())
	assert.ErrorIs(t, err, orig)
	assert.Equal(t, ErrBadParamInput, ErrorCode(err))
	assert.Nil(t, ErrorCode(orig))
}

func TestReverse(t *testing.T) {
	arr := []int{1, 2, 3, 4}
	ReverseInPlace(arr)
	assert.Equal(t, []int{4, 3, 2, 1}, arr)
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("3 4\r\n0000\nlast"))

	line, err := ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "3 4", line)

	line, err = ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "0000", line)

	line, err = ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = ReadLine(br)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStopConcurrentOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, StopConcurrentOperation(ctx))
	cancel()
	assert.True(t, StopConcurrentOperation(ctx))
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 2.5, Abs(-2.5))
	assert.InDelta(t, 180.0, RadiansToDegree(math.Pi), 1e-9)
	assert.InDelta(t, 90.0, RadiansToDegree(math.Pi/2), 1e-9)
}
