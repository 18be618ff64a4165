package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/mapalb/fonts"
	"github.com/ByLCY/mapalb/layout"
	"github.com/ByLCY/mapalb/renderer"
)

// DefaultImageDPI is the rasterisation resolution for images.
const DefaultImageDPI = 150

// fallbackFonts are tried in order when no font file is configured or the
// configured one cannot be read.
var fallbackFonts = []string{
	"Book Antiqua",
	"Palatino Linotype",
	"DejaVu Serif",
	"Liberation Serif",
	"Times New Roman",
	"serif",
}

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	opts   Options
	family *canvas.FontFamily

	faceMu sync.Mutex
	faces  map[float64]*canvas.FontFace // black faces used for measuring
}

var _ renderer.Typesetter = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	FontData    []byte   // takes precedence over FontPath
	FontPath    string   // resolved through the fonts package
	FontDirs    []string // search directories for a relative FontPath
	ImageDPI    float64  // 0 means DefaultImageDPI
	BorderWidth float64  // zone border stroke width in pt, 0 means 0.5
	Logger      *log.Logger
}

// New loads the font family and returns a renderer.
func New(opts Options) (*Renderer, error) {
	if opts.ImageDPI <= 0 {
		opts.ImageDPI = DefaultImageDPI
	}
	if opts.BorderWidth <= 0 {
		opts.BorderWidth = 0.5
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	r := &Renderer{opts: opts, faces: map[float64]*canvas.FontFace{}}
	family, err := r.loadFamily()
	if err != nil {
		return nil, err
	}
	r.family = family
	return r, nil
}

func (r *Renderer) loadFamily() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("album")
	data := r.opts.FontData
	if len(data) == 0 && r.opts.FontPath != "" {
		var err error
		data, err = fonts.Load(r.opts.FontPath, r.opts.FontDirs...)
		if err != nil {
			r.opts.Logger.Printf("WARNING: %v, falling back to a system serif font", err)
		}
	}
	if len(data) > 0 {
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("加载字体失败: %w", err)
		}
		return family, nil
	}
	for _, name := range fallbackFonts {
		if err := family.LoadSystemFont(name, canvas.FontRegular); err == nil {
			return family, nil
		}
	}
	return nil, fmt.Errorf("找不到可用的字体，请通过 font 设置或 %s 指定字体文件", "MAPALB_FONT")
}

// TextWidth implements layout.Measurer; fontSize and the result are in pt.
func (r *Renderer) TextWidth(content string, fontSize float64) (float64, error) {
	if fontSize <= 0 {
		return 0, fmt.Errorf("字号必须为正数: %g", fontSize)
	}
	r.faceMu.Lock()
	face, ok := r.faces[fontSize]
	if !ok {
		face = r.family.Face(fontSize, canvas.Black, canvas.FontRegular, canvas.FontNormal)
		r.faces[fontSize] = face
	}
	r.faceMu.Unlock()
	return face.TextWidth(content) * layout.MmToPt, nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, mm(first.Width), mm(first.Height), nil)
	meta := result.Meta
	writer.SetInfo(meta.Title, meta.Subject, "", meta.Author, meta.Creator)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(mm(page.Width), mm(page.Height))
		}
		c := canvas.New(mm(page.Width), mm(page.Height))
		ctx := canvas.NewContext(c)
		// 布局坐标原点在左下角、y 轴向上，与 CartesianI 一致
		ctx.SetCoordSystem(canvas.CartesianI)
		r.drawPage(ctx, page)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) {
	ctx.SetFillColor(rgba(page.Background))
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(0, 0, canvas.Rectangle(mm(page.Width), mm(page.Height)))

	for _, img := range page.Images {
		r.drawImage(ctx, page.Number, img)
	}
	for _, tb := range page.Texts {
		r.drawText(ctx, tb)
	}
}

func (r *Renderer) drawImage(ctx *canvas.Context, pageNo int, box layout.ImageBox) {
	src, err := loadImage(box.Path)
	if err != nil {
		r.opts.Logger.Printf("WARNING: could not load image %q for page %d at path %q: %v", box.ID, pageNo, box.Path, err)
		return
	}
	if dst, reg, ok := composeImage(box, src, r.opts.ImageDPI); ok {
		zoneTop := box.Zone.Bottom + box.Zone.Height
		ctx.DrawImage(mm(box.Zone.Left+reg.X), mm(zoneTop-reg.Y-reg.H), dst, canvas.DPMM(r.opts.ImageDPI/25.4))
	}
	if box.Border {
		ctx.SetFillColor(color.RGBA{})
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(mm(r.opts.BorderWidth))
		z := box.Zone
		ctx.DrawPath(mm(z.Left), mm(z.Bottom), canvas.Rectangle(mm(z.Width), mm(z.Height)))
	}
}

func (r *Renderer) drawText(ctx *canvas.Context, tb layout.TextBox) {
	if tb.FontSize <= 0 {
		return
	}
	face := r.family.Face(tb.FontSize, rgba(tb.Colour), canvas.FontRegular, canvas.FontNormal)
	for _, line := range tb.Lines {
		if line.Content == "" {
			continue
		}
		ctx.DrawText(mm(line.X), mm(line.Y), canvas.NewTextLine(face, line.Content, canvas.Left))
	}
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// mm 将点(pt)转换为毫米(mm)。
func mm(pt float64) float64 { return pt * layout.PtToMm }
