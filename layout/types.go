package layout

import "github.com/lucasb-eyer/go-colorful"

// 该文件定义布局结果，供渲染与调试 JSON 共用。
// 所有坐标均为页面坐标（pt），原点在左下角，y 轴向上。

// Result 保存布局后的页面。
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Page 记录页码、背景色与最终可以直接渲染的元素。
type Page struct {
	Number     int            `json:"number"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Background colorful.Color `json:"background"`
	Images     []ImageBox     `json:"images"`
	Texts      []TextBox      `json:"texts"`
}

// ImageBox 描述一张图片：可见区域、图片中心、原始尺寸、旋转角与放大边距。
type ImageBox struct {
	ID            string  `json:"id"`
	Path          string  `json:"path"`
	Zone          Rect    `json:"zone"`
	CenterX       float64 `json:"centerX"`
	CenterY       float64 `json:"centerY"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
	Angle         float64 `json:"angle"` // 逆时针角度
	Margin        Margin  `json:"margin"`
	Clip          bool    `json:"clip"`
	Border        bool    `json:"border"`
}

// DrawWidth 返回加上边距后的绘制宽度。
func (b ImageBox) DrawWidth() float64 { return b.NaturalWidth + 2*b.Margin.X }

// DrawHeight 返回加上边距后的绘制高度。
func (b ImageBox) DrawHeight() float64 { return b.NaturalHeight + 2*b.Margin.Y }

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	ID        string         `json:"id"`
	Zone      Rect           `json:"zone"`
	FontSize  float64        `json:"fontSize"` // 实际绘制字号
	Colour    colorful.Color `json:"colour"`
	Alignment string         `json:"alignment,omitempty"`
	Lines     []PlacedLine   `json:"lines"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
}
