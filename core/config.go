package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid routing config")

// Strategy selects the router used by a routing pass.
type Strategy string

const (
	StrategyGreedy Strategy = "greedy"
	StrategyAStar  Strategy = "astar"
	StrategySimple Strategy = "simple"
)

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case StrategyGreedy, StrategyAStar, StrategySimple:
		return s, nil
	case "":
		return StrategyGreedy, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
	}
}

// Config holds every tunable of the routers. All distances are in the same
// unit as the supplied rectangles.
type Config struct {
	Strategy Strategy `json:"strategy,omitempty"`

	// Greedy router
	MinimumDistanceBetweenLine float64 `json:"minimumDistanceBetweenLine"` // clearance between parallel wires
	MinimumStartLineDistance   float64 `json:"minimumStartLineDistance"`   // run before the first turn, from the device edge
	MaxHops                    int     `json:"maxHops"`
	DisableOptimization        bool    `json:"disableOptimization,omitempty"` // debug: keep raw hop geometry

	// Grid A* router
	SimplifyPath             bool    `json:"simplifyPath"`
	MaxPathfindingIterations int     `json:"maxPathfindingIterations"`
	TurnPenalty              float64 `json:"turnPenalty"`
	CrossingPenalty          float64 `json:"crossingPenalty"`
	GridMoveCost             float64 `json:"gridMoveCost"`
	GridCellSize             float64 `json:"gridCellSize"`
	GridPadding              int     `json:"gridPadding"` // blocked cells around each device

	// Simple router
	SimpleClearance float64 `json:"simpleClearance"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:                   StrategyGreedy,
		MinimumDistanceBetweenLine: 10,
		MinimumStartLineDistance:   20,
		MaxHops:                    256,
		SimplifyPath:               true,
		MaxPathfindingIterations:   50000,
		TurnPenalty:                2,
		CrossingPenalty:            5,
		GridMoveCost:               1,
		GridCellSize:               10,
		GridPadding:                1,
		SimpleClearance:            5,
	}
}

// Validate checks the ranges of every field.
func (c Config) Validate() error {
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	checks := []struct {
		name string
		ok   bool
	}{
		{"minimumDistanceBetweenLine must be >= 0", c.MinimumDistanceBetweenLine >= 0},
		{"minimumStartLineDistance must be >= 0", c.MinimumStartLineDistance >= 0},
		{"maxHops must be > 0", c.MaxHops > 0},
		{"maxPathfindingIterations must be > 0", c.MaxPathfindingIterations > 0},
		{"turnPenalty must be >= 0", c.TurnPenalty >= 0},
		{"crossingPenalty must be >= 0", c.CrossingPenalty >= 0},
		{"gridMoveCost must be > 0", c.GridMoveCost > 0},
		{"gridCellSize must be > 0", c.GridCellSize > 0},
		{"gridPadding must be >= 0", c.GridPadding >= 0},
		{"simpleClearance must be >= 0", c.SimpleClearance >= 0},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.name)
		}
	}
	return nil
}
