package layout

import (
	"fmt"

	"cablemap/core"
)

// RoutingSpec overrides routing tunables for one layout. Unset fields keep
// the value of the base config.
type RoutingSpec struct {
	Strategy      *string  `json:"strategy,omitempty"`
	Clearance     *float64 `json:"clearance,omitempty"`
	StartDistance *float64 `json:"startDistance,omitempty"`
	MaxHops       *int     `json:"maxHops,omitempty"`
	CellSize      *float64 `json:"cellSize,omitempty"`
	TurnPenalty   *float64 `json:"turnPenalty,omitempty"`
	Crossing      *float64 `json:"crossingPenalty,omitempty"`
}

// Apply returns base with the overrides of r applied and validated. A nil
// receiver returns base unchanged.
func (r *RoutingSpec) Apply(base core.Config) (core.Config, error) {
	if r == nil {
		return base, nil
	}
	cfg := base
	if r.Strategy != nil {
		s, err := core.ParseStrategy(*r.Strategy)
		if err != nil {
			return base, err
		}
		cfg.Strategy = s
	}
	if r.Clearance != nil {
		cfg.MinimumDistanceBetweenLine = *r.Clearance
	}
	if r.StartDistance != nil {
		cfg.MinimumStartLineDistance = *r.StartDistance
	}
	if r.MaxHops != nil {
		cfg.MaxHops = *r.MaxHops
	}
	if r.CellSize != nil {
		cfg.GridCellSize = *r.CellSize
	}
	if r.TurnPenalty != nil {
		cfg.TurnPenalty = *r.TurnPenalty
	}
	if r.Crossing != nil {
		cfg.CrossingPenalty = *r.Crossing
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("routing block: %w", err)
	}
	return cfg, nil
}

// set assigns a named override, as written in a .wires routing block.
func (r *RoutingSpec) set(key string, num *float64, word *string) error {
	needNum := func() (float64, error) {
		if num == nil {
			return 0, fmt.Errorf("%w: routing %s needs a number", ErrInvalidLayout, key)
		}
		return *num, nil
	}

	switch key {
	case "strategy":
		if word == nil {
			return fmt.Errorf("%w: routing strategy needs a name", ErrInvalidLayout)
		}
		r.Strategy = word
		return nil
	case "hops":
		v, err := needNum()
		if err != nil {
			return err
		}
		hops := int(v)
		r.MaxHops = &hops
		return nil
	}

	v, err := needNum()
	if err != nil {
		return err
	}
	switch key {
	case "clearance":
		r.Clearance = &v
	case "start":
		r.StartDistance = &v
	case "cell":
		r.CellSize = &v
	case "turn":
		r.TurnPenalty = &v
	case "crossing":
		r.Crossing = &v
	default:
		return fmt.Errorf("%w: unknown routing key %q", ErrInvalidLayout, key)
	}
	return nil
}
