package layout

import (
	"log"

	"github.com/ByLCY/mapalb/album"
)

// 页面尺寸固定为 A4 横向（pt）。
const (
	PageWidth  = 841.89
	PageHeight = 595.27
)

// BuildOptions 配置布局阶段所需的依赖与开关。
type BuildOptions struct {
	Measurer  Measurer
	Flags     Flags
	FontScale float64 // 实际绘制字号 = FontSize × FontScale，0 视为 1
	FirstPage int     // 小于等于 0 的页码（封面）默认跳过
	LastPage  int     // 0 表示不限制
	Rewriter  *album.Rewriter
	Logger    *log.Logger
	Meta      DocumentMeta
}

// Measurer 负责测量单行文本在给定字号下的宽度（pt）。
type Measurer interface {
	TextWidth(content string, fontSize float64) (float64, error)
}

func (o BuildOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o BuildOptions) includes(pageNo int) bool {
	first := o.FirstPage
	if first <= 0 {
		first = 1
	}
	if pageNo < first {
		return false
	}
	return o.LastPage <= 0 || pageNo <= o.LastPage
}
