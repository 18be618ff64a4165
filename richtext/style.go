package richtext

import "github.com/lucasb-eyer/go-colorful"

// Style holds the explicitly specified attributes of one markup level.
// A nil field means "not specified here".
type Style struct {
	FontSize  *int
	Colour    *colorful.Color
	Alignment *string
}

// Merge returns s overridden by every field that o specifies.
func (s Style) Merge(o Style) Style {
	if o.FontSize != nil {
		s.FontSize = o.FontSize
	}
	if o.Colour != nil {
		s.Colour = o.Colour
	}
	if o.Alignment != nil {
		s.Alignment = o.Alignment
	}
	return s
}

// Fold merges the levels from outermost to innermost.
func Fold(levels ...Style) Style {
	var out Style
	for _, l := range levels {
		out = out.Merge(l)
	}
	return out
}

// Resolve substitutes the defaults for unspecified fields.
func (s Style) Resolve() ResolvedStyle {
	r := ResolvedStyle{FontSize: DefaultFontSize, Colour: DefaultColour}
	if s.FontSize != nil {
		r.FontSize = *s.FontSize
	}
	if s.Colour != nil {
		r.Colour = *s.Colour
	}
	if s.Alignment != nil {
		r.Alignment = *s.Alignment
	}
	return r
}
