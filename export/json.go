package export

import (
	"encoding/json"

	"cablemap/connections"
)

// Route is the JSON form of one routed connection.
type Route struct {
	ID       string       `json:"id"`
	From     string       `json:"from"`
	To       string       `json:"to,omitempty"`
	Strategy string       `json:"strategy"`
	Degraded bool         `json:"degraded"`
	Reached  bool         `json:"reached"`
	Points   [][2]float64 `json:"points"`
}

// Routes converts routed connections to their JSON form, in order.
func Routes(routed []connections.RoutedConnection) []Route {
	out := make([]Route, 0, len(routed))
	for _, rc := range routed {
		r := Route{
			ID:       rc.ID(),
			From:     rc.Line.Source.Endpoint.Key(),
			Strategy: string(rc.Strategy),
			Degraded: rc.Degraded,
			Reached:  rc.Path.Reached,
			Points:   [][2]float64{},
		}
		if rc.Line.Target != nil {
			r.To = rc.Line.Target.Key()
		}
		for _, p := range rc.Path.Points() {
			r.Points = append(r.Points, [2]float64{p.X, p.Y})
		}
		out = append(out, r)
	}
	return out
}

// JSONExporter exports routes as an indented JSON array.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export ignores the scene beyond the routes themselves.
func (e *JSONExporter) Export(_ *connections.Scene, routed []connections.RoutedConnection) (string, error) {
	data, err := json.MarshalIndent(Routes(routed), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func (e *JSONExporter) FileExtension() string {
	return ".json"
}
