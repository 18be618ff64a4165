// Package richtext turns the XAML fragments stored with album text blocks
// into a paragraph style and an ordered list of lines.
package richtext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// XAMLNamespace is the presentation namespace used by FlowDocument fragments.
const XAMLNamespace = "http://schemas.microsoft.com/winfx/2006/xaml/presentation"

// Defaults substituted when the markup never specifies a value.
const DefaultFontSize = 14

var DefaultColour = colorful.Color{R: 0, G: 0, B: 0}

// Recognized attributes.
const (
	attrFontSize      = "FontSize"
	attrForeground    = "Foreground"
	attrTextAlignment = "TextAlignment"
)

// MalformedMarkupError reports a fragment that is not well-formed XML.
type MalformedMarkupError struct {
	Err error
}

func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("malformed text markup: %v", e.Err)
}

func (e *MalformedMarkupError) Unwrap() error { return e.Err }

// ResolvedStyle is the paragraph style after defaults have been applied.
type ResolvedStyle struct {
	FontSize  int            `json:"fontSize"`
	Colour    colorful.Color `json:"colour"`
	Alignment string         `json:"alignment,omitempty"`
}

// Paragraph is the parse result of one text block.
type Paragraph struct {
	Style ResolvedStyle `json:"style"`
	Lines []string      `json:"lines"`
}

// Parser parses fragments. Warnf receives the non-fatal diagnostics; nil
// discards them.
type Parser struct {
	Warnf func(format string, args ...any)
}

// Parse parses a fragment and reports diagnostics through the standard logger.
func Parse(fragment string) (*Paragraph, error) {
	return Parser{Warnf: log.Printf}.Parse(fragment)
}

// element is a generic XML node; only attributes, text and children matter.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

// Parse resolves the style chain root → Paragraph → Run and collects one line
// per Run in document order.
func (p Parser) Parse(fragment string) (*Paragraph, error) {
	root, err := decode(fragment)
	if err != nil {
		return nil, &MalformedMarkupError{Err: err}
	}

	var style Style
	var lines []string
	style = style.Merge(p.styleOf(root))
	root.walk(func(para *element) {
		if !para.is("Paragraph") {
			return
		}
		style = style.Merge(p.styleOf(para))
		para.walk(func(run *element) {
			if !run.is("Run") {
				return
			}
			style = style.Merge(p.styleOf(run))
			lines = append(lines, run.text())
		})
	})
	if lines == nil {
		lines = []string{}
	}

	text := strings.Join(lines, "\n")
	if style.FontSize == nil {
		p.warnf("no font size defined for text %q, using %d", text, DefaultFontSize)
	}
	if style.Colour == nil {
		p.warnf("no colour defined for text %q, using black", text)
	}
	return &Paragraph{Style: style.Resolve(), Lines: lines}, nil
}

func decode(fragment string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(fragment))
	// 根元素之前同样只允许空白、注释或处理指令。
	var start xml.StartElement
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("missing root element")
			}
			return nil, err
		}
		if t, ok := tok.(xml.CharData); ok && len(bytes.TrimSpace(t)) > 0 {
			return nil, fmt.Errorf("unexpected text before root element")
		}
		if t, ok := tok.(xml.StartElement); ok {
			start = t
			break
		}
	}
	var root element
	if err := dec.DecodeElement(&root, &start); err != nil {
		return nil, err
	}
	// 根元素之后只允许空白、注释或处理指令。
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return &root, nil
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("unexpected text after root element")
			}
		case xml.StartElement:
			return nil, fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		}
	}
}

// walk visits e and then every descendant in document order.
func (e *element) walk(fn func(*element)) {
	fn(e)
	for i := range e.Children {
		e.Children[i].walk(fn)
	}
}

func (e *element) is(local string) bool {
	return e.XMLName.Local == local && (e.XMLName.Space == XAMLNamespace || e.XMLName.Space == "")
}

// text returns the character data of a Run, falling back to its Text
// attribute.
func (e *element) text() string {
	if e.Text == "" {
		if v, ok := e.attr("Text"); ok {
			return v
		}
	}
	return e.Text
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name && (a.Name.Space == "" || a.Name.Space == XAMLNamespace) {
			return a.Value, true
		}
	}
	return "", false
}

// styleOf reads the explicit style attributes of one element. Unparsable
// values are reported and treated as absent.
func (p Parser) styleOf(e *element) Style {
	var s Style
	if v, ok := e.attr(attrFontSize); ok {
		if size, err := parseFontSize(v); err == nil {
			s.FontSize = &size
		} else {
			p.warnf("ignoring %s=%q on <%s>: %v", attrFontSize, v, e.XMLName.Local, err)
		}
	}
	if v, ok := e.attr(attrForeground); ok {
		if c, err := ParseColour(v); err == nil {
			s.Colour = &c
		} else {
			p.warnf("ignoring %s=%q on <%s>: %v", attrForeground, v, e.XMLName.Local, err)
		}
	}
	if v, ok := e.attr(attrTextAlignment); ok {
		align := v
		s.Alignment = &align
	}
	return s
}

func parseFontSize(v string) (int, error) {
	v = strings.TrimSpace(v)
	size, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, err
		}
		size = int(f + 0.5)
	}
	if size <= 0 {
		return 0, fmt.Errorf("font size must be positive")
	}
	return size, nil
}

// ParseColour converts #RRGGBB, #RGB or #AARRGGBB into fractional channels.
// The alpha channel of the 8-digit form is dropped.
func ParseColour(v string) (colorful.Color, error) {
	v = strings.TrimSpace(v)
	if len(v) == 9 && strings.HasPrefix(v, "#") {
		v = "#" + v[3:]
	}
	return colorful.Hex(v)
}

func (p Parser) warnf(format string, args ...any) {
	if p.Warnf != nil {
		p.Warnf(format, args...)
	}
}
