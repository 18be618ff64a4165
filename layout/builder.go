package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/mapalb/album"
	"github.com/ByLCY/mapalb/richtext"
)

// Build 按页码顺序为相册生成页面布局：背景色、图片（区域、中心、旋转与放大边距）和文本行。
// 单条图片或文本记录的问题只会输出警告并跳过该记录，不会中断整体布局。
func Build(a *album.Album, opts BuildOptions) (*Result, error) {
	if a == nil {
		return nil, fmt.Errorf("相册数据为空")
	}
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少文本测量器 Measurer")
	}

	var pages []Page
	for _, rec := range a.Pages {
		if !opts.includes(rec.PageNo) {
			continue
		}
		page, err := buildPage(a, rec, opts)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return &Result{Pages: pages, Meta: opts.Meta}, nil
}

func buildPage(a *album.Album, rec album.Page, opts BuildOptions) (Page, error) {
	page := Page{
		Number:     rec.PageNo,
		Width:      PageWidth,
		Height:     PageHeight,
		Background: rec.BackColor,
	}
	for _, img := range a.ImagesOn(rec.PageNo) {
		box, ok := buildImage(img, opts)
		if ok {
			page.Images = append(page.Images, box)
		}
	}
	for _, txt := range a.TextsOn(rec.PageNo) {
		box, ok, err := buildText(txt, opts)
		if err != nil {
			return Page{}, err
		}
		if ok {
			page.Texts = append(page.Texts, box)
		}
	}
	return page, nil
}

// Geometry 将图片记录转换为几何计算的输入。
func Geometry(img album.Image) ImageGeometry {
	return ImageGeometry{
		LeftPos:    img.LeftPos,
		TopPos:     img.TopPos,
		Width:      img.Width,
		Height:     img.Height,
		LastLeft:   img.LastLeft,
		LastTop:    img.LastTop,
		LastWidth:  img.LastWidth,
		LastHeight: img.LastHeight,
		Rotation:   img.ImageRotationAngle,
	}
}

func buildImage(img album.Image, opts BuildOptions) (ImageBox, bool) {
	path, err := opts.Rewriter.Resolve(img.ImagePath)
	if err != nil {
		opts.logger().Printf("WARNING: could not load image %q for page %d at path %q: %v",
			img.BookImageID, img.PageNo, img.ImagePath, err)
		return ImageBox{}, false
	}

	g := Geometry(img)
	zoneTop := PageHeight - g.TopPos
	box := ImageBox{
		ID:   img.BookImageID,
		Path: path,
		Zone: Rect{
			Left:   g.LeftPos,
			Bottom: zoneTop - g.Height,
			Width:  g.Width,
			Height: g.Height,
		},
		// 图片左上角 = 区域左上角 - (LastLeft, -LastTop)
		CenterX:       g.LeftPos - g.LastLeft + g.LastWidth/2,
		CenterY:       zoneTop + g.LastTop - g.LastHeight/2,
		NaturalWidth:  g.LastWidth,
		NaturalHeight: g.LastHeight,
		Margin:        ComputeMargin(g, opts.Flags),
		Clip:          opts.Flags.Clip,
		Border:        opts.Flags.Border,
	}
	if opts.Flags.Rotate {
		box.Angle = g.Angle()
	}
	return box, true
}

func buildText(txt album.Text, opts BuildOptions) (TextBox, bool, error) {
	log := opts.logger()
	parser := richtext.Parser{Warnf: func(format string, args ...any) {
		log.Printf("WARNING: text %q on page %d: "+format, append([]any{txt.BookTextID, txt.PageNo}, args...)...)
	}}
	para, err := parser.Parse(txt.BText)
	if err != nil {
		var malformed *richtext.MalformedMarkupError
		if errors.As(err, &malformed) {
			log.Printf("WARNING: skipping text %q on page %d: %v", txt.BookTextID, txt.PageNo, err)
			return TextBox{}, false, nil
		}
		return TextBox{}, false, err
	}

	zone := Rect{
		Left:   txt.LeftPos,
		Bottom: PageHeight - txt.TopPos - txt.Height,
		Width:  txt.Width,
		Height: txt.Height,
	}
	lines, err := PlaceParagraph(para, zone, opts.Measurer, opts.FontScale)
	if err != nil {
		return TextBox{}, false, fmt.Errorf("文本 %s（第 %d 页）排版失败: %w", txt.BookTextID, txt.PageNo, err)
	}
	scale := opts.FontScale
	if scale <= 0 {
		scale = 1
	}
	return TextBox{
		ID:        txt.BookTextID,
		Zone:      zone,
		FontSize:  float64(para.Style.FontSize) * scale,
		Colour:    para.Style.Colour,
		Alignment: para.Style.Alignment,
		Lines:     lines,
	}, true, nil
}
