package dsl_test

import (
	"testing"

	"github.com/ByLCY/mapalb/dsl"
)

const sampleProfile = `
// render profile for the 2015 road trip
profile roadtrip {
  rotate: on
  zoom-on-rotate: on; clip: off
  font: "fonts/book-antiqua-bold.ttf"
  font-scale: 0.75
  pages: 1 10
  border-width: 0.5mm
  # Windows prefixes recorded by the album editor
  rewrite ` + "`C:\\Users\\Florence\\Pictures\\2015\\Roadtrip\\1Best of roadtrip`" + ` => "/srv/album/all2/"
}
`

func TestParseProfile(t *testing.T) {
	p, err := dsl.ParseString(sampleProfile)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Name != "roadtrip" {
		t.Fatalf("expected profile name roadtrip, got %s", p.Name)
	}
	if len(p.Entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(p.Entries))
	}

	first := p.Entries[0].Setting
	if first == nil || first.Key != "rotate" || len(first.Values) != 1 || first.Values[0].Raw() != "on" {
		t.Fatalf("unexpected first setting: %+v", p.Entries[0])
	}
	if clip := p.Entries[2].Setting; clip == nil || clip.Key != "clip" || clip.Values[0].Raw() != "off" {
		t.Fatalf("expected clip after ';', got %+v", p.Entries[2])
	}
	font := p.Entries[3].Setting
	if font == nil || font.Values[0].String == nil || font.Values[0].Raw() != "fonts/book-antiqua-bold.ttf" {
		t.Fatalf("unexpected font setting: %+v", p.Entries[3])
	}
	pages := p.Entries[5].Setting
	if pages == nil || len(pages.Values) != 2 || pages.Values[0].Raw() != "1" || pages.Values[1].Raw() != "10" {
		t.Fatalf("unexpected pages setting: %+v", p.Entries[5])
	}
	if bw := p.Entries[6].Setting; bw == nil || bw.Values[0].Number == nil || *bw.Values[0].Number != "0.5mm" {
		t.Fatalf("unexpected border-width: %+v", p.Entries[6])
	}

	rw := p.Entries[7].Rewrite
	if rw == nil {
		t.Fatalf("expected rewrite rule, got %+v", p.Entries[7])
	}
	if string(rw.From) != `C:\Users\Florence\Pictures\2015\Roadtrip\1Best of roadtrip` {
		t.Fatalf("unexpected rewrite source: %q", rw.From)
	}
	if string(rw.To) != "/srv/album/all2/" {
		t.Fatalf("unexpected rewrite target: %q", rw.To)
	}
}

func TestParseProfileErrors(t *testing.T) {
	for _, src := range []string{
		`profile {}`,
		`profile p { rotate on }`,
		`profile p { rotate: }`,
		`profile p { rewrite "a" "b" }`,
		`profile p { rotate: on`,
	} {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}
