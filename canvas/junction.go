package canvas

// Arms is the set of directions a line leaves a cell in. Merging two line
// glyphs is the union of their arms.
type Arms uint8

const (
	ArmNorth Arms = 1 << iota
	ArmEast
	ArmSouth
	ArmWest
)

// Has reports whether every arm of o is set.
func (a Arms) Has(o Arms) bool {
	return a&o == o
}

// LineStyle maps arm sets to glyphs.
type LineStyle struct {
	glyphs [16]rune
}

// Glyph returns the rune for an arm set.
func (s LineStyle) Glyph(a Arms) rune {
	return s.glyphs[a&0x0f]
}

// UnicodeStyle draws with light box-drawing characters.
var UnicodeStyle = LineStyle{glyphs: [16]rune{
	0:                                      ' ',
	ArmNorth:                               '│',
	ArmSouth:                               '│',
	ArmNorth | ArmSouth:                    '│',
	ArmEast:                                '─',
	ArmWest:                                '─',
	ArmEast | ArmWest:                      '─',
	ArmNorth | ArmEast:                     '└',
	ArmEast | ArmSouth:                     '┌',
	ArmSouth | ArmWest:                     '┐',
	ArmNorth | ArmWest:                     '┘',
	ArmNorth | ArmEast | ArmSouth:          '├',
	ArmNorth | ArmSouth | ArmWest:          '┤',
	ArmEast | ArmSouth | ArmWest:           '┬',
	ArmNorth | ArmEast | ArmWest:           '┴',
	ArmNorth | ArmEast | ArmSouth | ArmWest: '┼',
}}

// ASCIIStyle draws with '-', '|' and '+'.
var ASCIIStyle = LineStyle{glyphs: [16]rune{
	0:                                      ' ',
	ArmNorth:                               '|',
	ArmSouth:                               '|',
	ArmNorth | ArmSouth:                    '|',
	ArmEast:                                '-',
	ArmWest:                                '-',
	ArmEast | ArmWest:                      '-',
	ArmNorth | ArmEast:                     '+',
	ArmEast | ArmSouth:                     '+',
	ArmSouth | ArmWest:                     '+',
	ArmNorth | ArmWest:                     '+',
	ArmNorth | ArmEast | ArmSouth:          '+',
	ArmNorth | ArmSouth | ArmWest:          '+',
	ArmEast | ArmSouth | ArmWest:           '+',
	ArmNorth | ArmEast | ArmWest:           '+',
	ArmNorth | ArmEast | ArmSouth | ArmWest: '+',
}}

// ArmsOf returns the arms of a box-drawing or ASCII line glyph. It reports
// false for any other rune.
func ArmsOf(r rune) (Arms, bool) {
	if r == '+' {
		return ArmNorth | ArmEast | ArmSouth | ArmWest, true
	}
	for _, s := range []LineStyle{UnicodeStyle, ASCIIStyle} {
		for a := Arms(1); a < 16; a++ {
			if s.glyphs[a] == r {
				return canonical(a), true
			}
		}
	}
	return 0, false
}

// canonical widens single-arm sets to a full straight line, the way the
// glyph reads on screen.
func canonical(a Arms) Arms {
	switch a {
	case ArmNorth, ArmSouth:
		return ArmNorth | ArmSouth
	case ArmEast, ArmWest:
		return ArmEast | ArmWest
	}
	return a
}
