package logic

import "fmt"

// Palette is a closed color table plus the order presses step through.
type Palette struct {
	colors   map[string]RGB
	sequence []string
}

// NewPalette validates and copies the given table and sequence.
// ColorOff is added to the table when missing; if present it must be (0,0,0).
func NewPalette(colors map[string]RGB, sequence []string) (*Palette, error) {
	if len(sequence) == 0 {
		return nil, &ConfigError{Field: "sequence", Reason: "must not be empty"}
	}

	table := make(map[string]RGB, len(colors)+1)
	for name, c := range colors {
		if name == "" {
			return nil, &ConfigError{Field: "colors", Reason: "empty color name"}
		}
		table[name] = c
	}
	if off, ok := table[ColorOff]; ok && off != Off {
		return nil, &ConfigError{Field: "colors." + ColorOff, Reason: fmt.Sprintf("must be %v, got %v", Off, off)}
	}
	table[ColorOff] = Off

	seq := make([]string, len(sequence))
	for i, name := range sequence {
		if _, ok := table[name]; !ok {
			return nil, &ConfigError{Field: fmt.Sprintf("sequence[%d]", i), Reason: fmt.Sprintf("unknown color %q", name)}
		}
		seq[i] = name
	}

	return &Palette{colors: table, sequence: seq}, nil
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() *Palette {
	p, err := NewPalette(DefaultColors(), DefaultSequence())
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns the color for name, or a ConfigError if it is not in the table.
func (p *Palette) Lookup(name string) (RGB, error) {
	c, ok := p.colors[name]
	if !ok {
		return RGB{}, &ConfigError{Field: "color", Reason: fmt.Sprintf("unknown color %q", name)}
	}
	return c, nil
}

// Len returns the length of the sequence.
func (p *Palette) Len() int {
	return len(p.sequence)
}

// At returns the sequence entry at i. i must be in [0, Len()).
func (p *Palette) At(i int) string {
	return p.sequence[i]
}

// Sequence returns a copy of the sequence.
func (p *Palette) Sequence() []string {
	return append([]string(nil), p.sequence...)
}
