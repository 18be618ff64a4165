package renderer

import "github.com/ByLCY/mapalb/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Typesetter 是既能渲染又能为布局阶段测量文本的渲染器。
type Typesetter interface {
	Renderer
	layout.Measurer
}
