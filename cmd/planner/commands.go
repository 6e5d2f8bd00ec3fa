package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/roadfinder/pkg"
	"github.com/lintang-b-s/roadfinder/pkg/actuation"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/engine/planner"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"github.com/lintang-b-s/roadfinder/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mapFile    string
	startFlag  string
	endFlag    string
	solverFlag string
	snapFlag   bool
	snapRadius float64
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Plan shortest paths on occupancy grid maps",
	Long: `Plans shortest 8-connected paths between two free cells of an occupancy grid.

Map files are plain text (first line "rows cols", then one line of 0/1 per row),
the same format compressed with bzip2 (.bz2 suffix) or a yaml map spec (.yaml/.yml).

Examples:
  planner plan --map warehouse.map --start 0,0 --end 2,3
  planner plan --map yard.yaml --json
  planner drive --map yard.yaml --start 0,0 --end 2,2
  planner convert warehouse.map warehouse.map.bz2`,
	SilenceUsage: true,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the shortest path between two cells",
	RunE:  runPlan,
}

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Plan a path and replay its drive commands on in-memory output lines",
	RunE:  runDrive,
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Rewrite a map file, compressing it when <out> ends in .bz2",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	for _, cmd := range []*cobra.Command{planCmd, driveCmd} {
		cmd.Flags().StringVarP(&mapFile, "map", "m", "", "map file (.map, .map.bz2, .yaml)")
		cmd.Flags().StringVarP(&startFlag, "start", "s", "", "start cell as row,col (default: the map spec start)")
		cmd.Flags().StringVarP(&endFlag, "end", "e", "", "end cell as row,col (default: the map spec end)")
		cmd.Flags().StringVar(&solverFlag, "solver", string(planner.SolverBellmanFord), "bellman-ford or dijkstra")
		cmd.Flags().BoolVar(&snapFlag, "snap", false, "move blocked endpoints to the nearest free cell")
		cmd.Flags().Float64Var(&snapRadius, "snap-radius", 3, "snap search radius in cells")
		_ = cmd.MarkFlagRequired("map")
	}
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the plan as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(planCmd, driveCmd, convertCmd)
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return logger.NewWithLevel(zapcore.DebugLevel)
	}
	return logger.NewWithLevel(zapcore.WarnLevel)
}

// parseCell parses "row,col".
func parseCell(s string) (da.GridCell, error) {
	rowStr, colStr, ok := strings.Cut(s, ",")
	if !ok {
		return da.GridCell{}, fmt.Errorf("%w: %q is not row,col", da.ErrInvalidEndpoint, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return da.GridCell{}, fmt.Errorf("%w: row of %q: %v", da.ErrInvalidEndpoint, s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return da.GridCell{}, fmt.Errorf("%w: col of %q: %v", da.ErrInvalidEndpoint, s, err)
	}
	return da.NewGridCell(row, col), nil
}

// loadRequest reads the map file and resolves the endpoints, flags win over the map spec defaults.
func loadRequest() (usecases.PlanRequest, error) {
	var (
		grid       *da.OccupancyGrid
		start, end da.GridCell
		hasStart   bool
		hasEnd     bool
		err        error
	)

	if strings.HasSuffix(mapFile, ".yaml") || strings.HasSuffix(mapFile, ".yml") {
		spec, err := da.ReadMapSpec(mapFile)
		if err != nil {
			return usecases.PlanRequest{}, err
		}
		if grid, err = spec.Grid(); err != nil {
			return usecases.PlanRequest{}, err
		}
		if start, hasStart, err = spec.StartCell(); err != nil {
			return usecases.PlanRequest{}, err
		}
		if end, hasEnd, err = spec.EndCell(); err != nil {
			return usecases.PlanRequest{}, err
		}
	} else if grid, err = da.ReadGrid(mapFile); err != nil {
		return usecases.PlanRequest{}, err
	}

	if startFlag != "" {
		if start, err = parseCell(startFlag); err != nil {
			return usecases.PlanRequest{}, err
		}
		hasStart = true
	}
	if endFlag != "" {
		if end, err = parseCell(endFlag); err != nil {
			return usecases.PlanRequest{}, err
		}
		hasEnd = true
	}
	if !hasStart || !hasEnd {
		return usecases.PlanRequest{}, fmt.Errorf("%w: --start and --end are required unless the map spec sets them",
			da.ErrInvalidEndpoint)
	}

	return usecases.PlanRequest{
		Grid:       grid,
		Start:      start,
		End:        end,
		Solver:     planner.SolverKind(solverFlag),
		Snap:       snapFlag,
		SnapRadius: snapRadius,
	}, nil
}

func plan(ctx context.Context, log *zap.Logger) (usecases.PlanResponse, error) {
	req, err := loadRequest()
	if err != nil {
		return usecases.PlanResponse{}, err
	}
	ps, err := usecases.NewPlanningService(log, usecases.Config{CacheSize: 1, SnapRadius: snapRadius, NumWorkers: 1})
	if err != nil {
		return usecases.PlanResponse{}, err
	}
	return ps.Plan(ctx, req)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	resp, err := plan(cmd.Context(), log)
	if err != nil {
		return err
	}
	return printPlan(cmd.OutOrStdout(), resp, jsonOutput)
}

func printPlan(w io.Writer, resp usecases.PlanResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	if !resp.Found {
		_, err := fmt.Fprintf(w, "no path from %v to %v\n", resp.Start, resp.End)
		return err
	}
	commands := make([]string, len(resp.Commands))
	for i, c := range resp.Commands {
		commands[i] = c.String()
	}
	_, err := fmt.Fprintf(w, "%s\ndistance: %.4f\ncommands: %s\n", resp.Rendered, resp.Distance,
		strings.Join(commands, " "))
	return err
}

func runDrive(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	resp, err := plan(cmd.Context(), log)
	if err != nil {
		return err
	}

	driver := actuation.NewMemoryDriver()
	handler, err := actuation.NewOutputHandler(driver, log)
	if err != nil {
		return err
	}
	defer handler.Close()

	return drive(cmd.OutOrStdout(), handler, driver, resp.Commands)
}

func drive(w io.Writer, handler *actuation.OutputHandler, driver *actuation.MemoryDriver, commands []pkg.Command) error {
	for i, c := range commands {
		if err := handler.Update(c); err != nil {
			return err
		}
		levels := make([]string, len(actuation.OutputLines))
		for j, line := range actuation.OutputLines {
			levels[j] = fmt.Sprintf("%s=%d", line, driver.Level(line))
		}
		if _, err := fmt.Fprintf(w, "%2d %-8s %s\n", i, c, strings.Join(levels, " ")); err != nil {
			return err
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	grid, err := da.ReadGrid(args[0])
	if err != nil {
		return err
	}
	if err := grid.WriteGrid(args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %dx%d map to %s\n", grid.Rows(), grid.Cols(), args[1])
	return nil
}
