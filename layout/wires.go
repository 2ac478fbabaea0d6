package layout

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// WiresLexer tokenises the .wires layout format:
//
//	# comment
//	device pc kind computer at 0, 0 size 80 60 {
//	    port eth0 right out at 20
//	    port usb  left in size 10 6
//	}
//	connect pc.eth0 -> hub.p1 as uplink
//	routing { strategy astar clearance 12 }
//
// Keywords are plain identifiers matched by the grammar, so a port may be
// called "in" or "left".
var WiresLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "Arrow", Pattern: `->`},
	{Name: "Number", Pattern: `-?\d+(\.\d+)?`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})

// WiresFile is the AST of a .wires document.
type WiresFile struct {
	Statements []*WiresStatement `@@*`
}

// WiresStatement is one top-level declaration.
type WiresStatement struct {
	Device  *DeviceDecl  `  @@`
	Connect *ConnectDecl `| @@`
	Routing *RoutingDecl `| @@`
}

// DeviceDecl declares a device and its ports.
type DeviceDecl struct {
	ID    string      `"device" @Ident`
	Kind  string      `( "kind" @Ident )?`
	X     float64     `"at" @Number`
	Y     float64     `Comma @Number`
	Size  *SizeDecl   `@@`
	Ports []*PortDecl `( LBrace @@* RBrace )?`
}

// SizeDecl is a "size W H" clause.
type SizeDecl struct {
	Width  float64 `"size" @Number`
	Height float64 `@Number`
}

// PortDecl declares a connector on the enclosing device.
type PortDecl struct {
	ID     string    `"port" @Ident`
	Side   string    `@( "left" | "right" )`
	Flow   string    `@( "in" | "out" )?`
	Offset *float64  `( "at" @Number )?`
	Size   *SizeDecl `@@?`
}

// ConnectDecl declares a cable. The target is optional.
type ConnectDecl struct {
	From *EndpointRef `"connect" @@`
	To   *EndpointRef `( Arrow @@ )?`
	ID   string       `( "as" @Ident )?`
}

// EndpointRef is a "device.port" reference.
type EndpointRef struct {
	Device string `@Ident`
	Port   string `Dot @Ident`
}

// RoutingDecl is a block of routing overrides.
type RoutingDecl struct {
	Settings []*Setting `"routing" LBrace @@* RBrace`
}

// Setting is one "key value" routing override.
type Setting struct {
	Key   string        `@Ident`
	Value *SettingValue `@@`
}

// SettingValue is a number or a bare word.
type SettingValue struct {
	Number *float64 `  @Number`
	Word   *string  `| @Ident`
}

func (e *EndpointRef) String() string {
	if e == nil {
		return ""
	}
	return e.Device + "." + e.Port
}

// WiresParser parses .wires documents.
type WiresParser struct {
	parser *participle.Parser[WiresFile]
}

// NewWiresParser creates a new .wires parser instance.
func NewWiresParser() (*WiresParser, error) {
	parser, err := participle.Build[WiresFile](
		participle.Lexer(WiresLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &WiresParser{parser: parser}, nil
}

// Parse parses a .wires document from a reader.
func (p *WiresParser) Parse(r io.Reader) (*WiresFile, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a .wires document from a string.
func (p *WiresParser) ParseString(input string) (*WiresFile, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// Snapshot converts the AST into a layout snapshot.
func (f *WiresFile) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{}
	for _, st := range f.Statements {
		switch {
		case st.Device != nil:
			snap.Devices = append(snap.Devices, st.Device.spec())
		case st.Connect != nil:
			snap.Connections = append(snap.Connections, ConnectionSpec{
				ID:   st.Connect.ID,
				From: st.Connect.From.String(),
				To:   st.Connect.To.String(),
			})
		case st.Routing != nil:
			if snap.Routing == nil {
				snap.Routing = &RoutingSpec{}
			}
			for _, s := range st.Routing.Settings {
				if err := snap.Routing.set(s.Key, s.Value.Number, s.Value.Word); err != nil {
					return nil, err
				}
			}
		}
	}
	return snap, nil
}

func (d *DeviceDecl) spec() DeviceSpec {
	spec := DeviceSpec{ID: d.ID, Kind: d.Kind, X: d.X, Y: d.Y}
	if d.Size != nil {
		spec.Width, spec.Height = d.Size.Width, d.Size.Height
	}
	for _, p := range d.Ports {
		port := PortSpec{ID: p.ID, Side: p.Side, Flow: p.Flow, Offset: p.Offset}
		if p.Size != nil {
			port.Width, port.Height = p.Size.Width, p.Size.Height
		}
		spec.Ports = append(spec.Ports, port)
	}
	return spec
}
