// Package album loads the page, image and text tables of a photo-album
// database.
package album

import (
	"context"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Table names in the album database.
const (
	TablePages  = "BookPages"
	TableImages = "BookImage"
	TableTexts  = "BookText"
)

// Page is one row of BookPages. Page numbers ≤ 0 are covers.
type Page struct {
	PageNo    int
	BackColor colorful.Color
}

// Image is one row of BookImage. Lengths are in page points; the rotation is
// the stored clockwise display angle in degrees.
type Image struct {
	BookImageID        string
	PageNo             int
	ImagePath          string
	LeftPos            float64
	TopPos             float64
	Width              float64
	Height             float64
	LastLeft           float64
	LastTop            float64
	LastWidth          float64
	LastHeight         float64
	ImageRotationAngle float64
}

// Text is one row of BookText. BText holds a XAML FlowDocument fragment.
type Text struct {
	BookTextID string
	PageNo     int
	LeftPos    float64
	TopPos     float64
	Width      float64
	Height     float64
	BText      string
}

// Album is the full record set, in table order.
type Album struct {
	Pages  []Page
	Images []Image
	Texts  []Text
}

// ImagesOn returns the images placed on pageNo, in table order.
func (a *Album) ImagesOn(pageNo int) []Image {
	var out []Image
	for _, img := range a.Images {
		if img.PageNo == pageNo {
			out = append(out, img)
		}
	}
	return out
}

// TextsOn returns the text blocks placed on pageNo, in table order.
func (a *Album) TextsOn(pageNo int) []Text {
	var out []Text
	for _, txt := range a.Texts {
		if txt.PageNo == pageNo {
			out = append(out, txt)
		}
	}
	return out
}

// Load reads the three album tables from src.
func Load(ctx context.Context, src Source) (*Album, error) {
	a := &Album{}
	var err error
	if a.Pages, err = loadTable(ctx, src, TablePages, parsePage); err != nil {
		return nil, err
	}
	if a.Images, err = loadTable(ctx, src, TableImages, parseImage); err != nil {
		return nil, err
	}
	if a.Texts, err = loadTable(ctx, src, TableTexts, parseText); err != nil {
		return nil, err
	}
	return a, nil
}

func loadTable[T any](ctx context.Context, src Source, name string, parse func(record) (T, error)) ([]T, error) {
	rc, err := src.Table(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", name, err)
	}
	defer rc.Close()

	t, err := readTable(rc)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", name, err)
	}
	out := make([]T, 0, len(t.rows))
	for i := range t.rows {
		rec := t.record(i)
		v, err := parse(rec)
		if err != nil {
			return nil, fmt.Errorf("table %s row %d: %w", name, i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parsePage(rec record) (Page, error) {
	var p Page
	var err error
	if p.PageNo, err = rec.integer("PageNo"); err != nil {
		return p, err
	}
	var rgb [3]float64
	for i, name := range []string{"BackColor_Red", "BackColor_Green", "BackColor_Blue"} {
		if rgb[i], err = rec.number(name); err != nil {
			return p, err
		}
	}
	p.BackColor = colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}
	return p, nil
}

func parseImage(rec record) (Image, error) {
	img := Image{
		BookImageID: rec.str("BookImageId"),
		ImagePath:   rec.str("ImagePath"),
	}
	var err error
	if img.PageNo, err = rec.integer("PageNo"); err != nil {
		return img, err
	}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"LeftPos", &img.LeftPos},
		{"TopPos", &img.TopPos},
		{"Width", &img.Width},
		{"Height", &img.Height},
		{"LastLeft", &img.LastLeft},
		{"LastTop", &img.LastTop},
		{"LastWidth", &img.LastWidth},
		{"LastHeight", &img.LastHeight},
		{"ImageRotationAngle", &img.ImageRotationAngle},
	}
	for _, f := range fields {
		if *f.dst, err = rec.number(f.name); err != nil {
			return img, err
		}
	}
	return img, nil
}

func parseText(rec record) (Text, error) {
	txt := Text{
		BookTextID: rec.str("BookTextId"),
		BText:      rec.str("BText"),
	}
	var err error
	if txt.PageNo, err = rec.integer("PageNo"); err != nil {
		return txt, err
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"LeftPos", &txt.LeftPos},
		{"TopPos", &txt.TopPos},
		{"Width", &txt.Width},
		{"Height", &txt.Height},
	} {
		if *f.dst, err = rec.number(f.name); err != nil {
			return txt, err
		}
	}
	return txt, nil
}
