package obstacles

import (
	"sort"
	"strings"

	"cablemap/pathfinding"
)

// DebugVisualizer renders a grid as ASCII art for debugging and tests.
type DebugVisualizer struct {
	ShowLanes    bool
	ShowOccupied bool
}

// Visualize draws blocked cells as '#', lanes as '=', occupied cells as '+'
// and free cells as '.'. Paths are overlaid with '*', in key order.
func (dv *DebugVisualizer) Visualize(g *Grid, paths map[string][]pathfinding.GridPoint) string {
	w, h := g.Size()
	rows := make([][]rune, h)
	for y := range rows {
		rows[y] = make([]rune, w)
		for x := range rows[y] {
			p := pathfinding.GridPoint{X: x, Y: y}
			switch {
			case g.IsBlocked(p):
				rows[y][x] = '#'
			case dv.ShowLanes && g.IsLane(p):
				rows[y][x] = '='
			case dv.ShowOccupied && g.used[p] != (cellUse{}):
				rows[y][x] = '+'
			default:
				rows[y][x] = '.'
			}
		}
	}

	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, p := range pathfinding.Expand(paths[k]) {
			if p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h {
				rows[p.Y][p.X] = '*'
			}
		}
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}
