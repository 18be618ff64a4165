package layout

import (
	"fmt"

	"github.com/ByLCY/mapalb/richtext"
)

// ascentCorrection 是基线相对行框底部的经验修正系数。
const ascentCorrection = 7.0 / 30.0

// Rect 以页面坐标（pt，原点在左下角，y 轴向上）描述一个矩形。
type Rect struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacedLine 是一行已经确定基线位置的文本。
type PlacedLine struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
}

// PlaceParagraph 将段落垂直居中放入 rect，每一行按自身宽度单独水平居中。
// 行与行之间没有额外间距；fontScale 为 0 时按 1 处理。
func PlaceParagraph(p *richtext.Paragraph, rect Rect, m Measurer, fontScale float64) ([]PlacedLine, error) {
	if p == nil {
		return nil, nil
	}
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少文本测量器 Measurer")
	}
	if fontScale <= 0 {
		fontScale = 1
	}
	fontSize := float64(p.Style.FontSize)
	effective := fontSize * fontScale
	textHeight := float64(len(p.Lines)) * fontSize

	y := rect.Bottom + (rect.Height-textHeight)/2 + effective*ascentCorrection
	placed := make([]PlacedLine, 0, len(p.Lines))
	for _, line := range p.Lines {
		width, err := m.TextWidth(line, effective)
		if err != nil {
			return nil, fmt.Errorf("测量文本 %q 失败: %w", line, err)
		}
		placed = append(placed, PlacedLine{
			Content: line,
			X:       rect.Left + (rect.Width-width)/2,
			Y:       y,
			Width:   width,
		})
		y += effective
	}
	return placed, nil
}
