package layout

import "math"

// 旋转放大计算：图片在区域内旋转后，需要额外放大多少才能继续覆盖区域四角。

// Axis 选择旋转边距从哪条轴开始推导。
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// ImageGeometry 描述一张图片的原始尺寸、可见区域与旋转角度（单位：pt / 度）。
type ImageGeometry struct {
	LeftPos    float64 // 区域左上角在页面中的横坐标
	TopPos     float64 // 区域左上角距页面顶部的距离
	Width      float64 // 区域宽度
	Height     float64 // 区域高度
	LastLeft   float64 // 区域左上角相对图片左上角的横向偏移
	LastTop    float64 // 区域左上角相对图片左上角的纵向偏移
	LastWidth  float64 // 图片原始宽度
	LastHeight float64 // 图片原始高度
	Rotation   float64 // 存储的顺时针显示角度
}

// Angle 返回数学约定（逆时针）下的旋转角度。
func (g ImageGeometry) Angle() float64 { return 360 - g.Rotation }

// NaturalMargin 返回图片本身相对区域已经多出的边距，可能为负。
func (g ImageGeometry) NaturalMargin() Margin {
	return Margin{
		X: (g.LastWidth - g.Width) / 2,
		Y: (g.LastHeight - g.Height) / 2,
	}
}

// Margin 是图片围绕中心在每个方向上额外放大的距离。
type Margin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Flags 替代原来的全局开关。
type Flags struct {
	Rotate       bool `json:"rotate"`
	ZoomOnRotate bool `json:"zoomOnRotate"`
	Clip         bool `json:"clip"`
	Border       bool `json:"border"`
}

// DefaultFlags 旋转、放大与裁剪开启，边框关闭。
func DefaultFlags() Flags {
	return Flags{Rotate: true, ZoomOnRotate: true, Clip: true}
}

// ComputeMargin 计算图片旋转后为覆盖区域所需的额外边距。
// 对任意输入都返回非负结果，退化几何返回零边距。
func ComputeMargin(g ImageGeometry, flags Flags) Margin {
	if !flags.Rotate || !flags.ZoomOnRotate {
		return Margin{}
	}
	if g.Width <= 0 || g.Height <= 0 || g.LastWidth <= 0 || g.LastHeight <= 0 {
		return Margin{}
	}
	angle := g.Angle()
	if math.Mod(angle, 360) == 0 {
		return Margin{}
	}

	aspect := g.LastHeight / g.LastWidth
	var rot Margin
	if angle >= 0 {
		rot.X = RotationMargin(g.Width, g.Height, angle, AxisX)
		rot.Y = aspect * rot.X
	} else {
		rot.Y = RotationMargin(g.Width, g.Height, angle, AxisY)
		rot.X = rot.Y / aspect
	}

	natural := g.NaturalMargin()
	excessX := rot.X - natural.X
	excessY := rot.Y - natural.Y

	var m Margin
	switch {
	case excessX <= 0 && excessY <= 0:
		// 图片自身已经足够覆盖
	case excessX <= 0 || excessY <= 0:
		m = rot
	case excessX > excessY:
		m.X = excessX
		m.Y = aspect * excessX
	default:
		m.Y = excessY
		m.X = excessY / aspect
	}
	return Margin{X: clampMargin(m.X), Y: clampMargin(m.Y)}
}

// RotationMargin 计算宽 w、高 h 的区域旋转 angle 度（逆时针）后，
// 在 axis 方向上需要补足的边距。AxisY 在转置坐标系中复用 AxisX 的构造：
// 宽高互换、角度取反，因此两条分支在角度跨过 0 时保持一致。
func RotationMargin(w, h, angle float64, axis Axis) float64 {
	if axis == AxisY {
		w, h, angle = h, w, -angle
	}
	if w <= 0 || h <= 0 {
		return 0
	}

	rad := angle * math.Pi / 180
	diag := math.Hypot(w, h)
	phi := math.Atan(h / w)
	dx := (math.Cos(phi+rad) - math.Cos(phi)) * diag
	dy := (math.Sin(phi+rad) - math.Sin(phi)) * diag

	topRight := point{w / 2, h / 2}
	rotatedTopRight := point{topRight.x + dx, topRight.y + dy}
	bottomRight := point{w / 2, -h / 2}
	shiftedBottomRight := point{bottomRight.x + dy, bottomRight.y - dx}

	base := shiftedBottomRight.dist(rotatedTopRight)
	if base == 0 {
		return 0
	}
	area := heron(base, shiftedBottomRight.dist(topRight), rotatedTopRight.dist(topRight))
	// 面积 = 底 × 高 / 2
	return clampMargin(2 * area / base)
}

type point struct{ x, y float64 }

func (p point) dist(q point) float64 { return math.Hypot(p.x-q.x, p.y-q.y) }

// heron 由三边长求三角形面积；浮点误差导致的负值按 0 处理。
func heron(a, b, c float64) float64 {
	s := (a + b + c) / 2
	sq := s * (s - a) * (s - b) * (s - c)
	if sq <= 0 {
		return 0
	}
	return math.Sqrt(sq)
}

func clampMargin(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
