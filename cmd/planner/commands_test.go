package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/roadfinder/pkg"
	"github.com/lintang-b-s/roadfinder/pkg/actuation"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetFlags() {
	mapFile, startFlag, endFlag, solverFlag = "", "", "", "bellman-ford"
	snapFlag, snapRadius, jsonOutput = false, 3, false
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		want    da.GridCell
		wantErr bool
	}{
		{in: "0,0", want: da.NewGridCell(0, 0)},
		{in: " 2, 3", want: da.NewGridCell(2, 3)},
		{in: "-1,4", want: da.NewGridCell(-1, 4)},
		{in: "2", wantErr: true},
		{in: "a,1", wantErr: true},
		{in: "1,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCell(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, da.ErrInvalidEndpoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanFromMapFile(t *testing.T) {
	t.Cleanup(resetFlags)
	resetFlags()
	mapFile = writeFile(t, "warehouse.map", "3 4\n0000\n0110\n0000\n")
	startFlag, endFlag = "0,0", "2,3"

	resp, err := plan(context.Background(), zap.NewNop())
	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, "[(0, 0) -> (0, 1) -> (0, 2) -> (1, 3) -> (2, 3)]", resp.Rendered)

	var out bytes.Buffer
	require.NoError(t, printPlan(&out, resp, false))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[(0, 0) -> (0, 1) -> (0, 2) -> (1, 3) -> (2, 3)]", lines[0])
	assert.Equal(t, "distance: 4.4142", lines[1])
	assert.Equal(t, "commands: forward forward right right stop", lines[2])
}

func TestPlanFromMapSpecDefaults(t *testing.T) {
	t.Cleanup(resetFlags)
	resetFlags()
	mapFile = writeFile(t, "yard.yaml", "name: yard\nrows:\n  - \"010\"\n  - \"000\"\n  - \"000\"\nstart: [0, 0]\nend: [2, 2]\n")
	solverFlag = "dijkstra"

	resp, err := plan(context.Background(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []da.GridCell{da.NewGridCell(0, 0), da.NewGridCell(1, 1), da.NewGridCell(2, 2)}, resp.Path)
}

func TestPlanMissingEndpoints(t *testing.T) {
	t.Cleanup(resetFlags)
	resetFlags()
	mapFile = writeFile(t, "warehouse.map", "3 4\n0000\n0110\n0000\n")
	startFlag = "0,0"

	_, err := plan(context.Background(), zap.NewNop())
	assert.ErrorIs(t, err, da.ErrInvalidEndpoint)
}

func TestPrintPlanNotFound(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPlan(&out, usecases.PlanResponse{
		Start: da.NewGridCell(0, 0),
		End:   da.NewGridCell(2, 2),
	}, false))
	assert.Equal(t, "no path from (0, 0) to (2, 2)\n", out.String())
}

func TestPlanCommandJSON(t *testing.T) {
	t.Cleanup(resetFlags)
	resetFlags()
	path := writeFile(t, "warehouse.map", "3 3\n000\n011\n000\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"plan", "--map", path, "--start", "0,0", "--end", "2,2", "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	var resp usecases.PlanResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, []da.GridCell{da.NewGridCell(0, 0), da.NewGridCell(1, 0), da.NewGridCell(2, 1),
		da.NewGridCell(2, 2)}, resp.Path)
}

func TestDrive(t *testing.T) {
	driver := actuation.NewMemoryDriver()
	handler, err := actuation.NewOutputHandler(driver, zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, drive(&out, handler, driver, []pkg.Command{pkg.GO_FORWARD, pkg.GO_LEFT, pkg.STOP}))
	require.NoError(t, handler.Close())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "forward=1 left=0 right=0 backward=0")
	assert.Contains(t, lines[1], "forward=0 left=1 right=0 backward=0")
	assert.Contains(t, lines[2], "forward=0 left=0 right=0 backward=0")
	assert.Equal(t, 1, driver.NumReleases())
}

func TestConvertCommand(t *testing.T) {
	in := writeFile(t, "warehouse.map", "2 2\n01\n10\n")
	out := filepath.Join(t.TempDir(), "warehouse.map.bz2")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"convert", in, out})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "wrote 2x2 map to "+out+"\n", buf.String())

	grid, err := da.ReadGrid(out)
	require.NoError(t, err)
	assert.Equal(t, "01\n10", grid.String())
}
