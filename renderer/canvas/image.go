package canvasrenderer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/mapalb/layout"
)

// region is a rectangle relative to the top-left corner of an image zone,
// y pointing down, in pt.
type region struct {
	X, Y, W, H float64
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("图片路径为空")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}
	return img, nil
}

// composeImage rasterises src at dpi, scaled to the box's draw size and
// rotated counter-clockwise by box.Angle about its centre. With clipping the
// raster covers exactly the zone; otherwise it covers the rotated image's
// bounding box. ok is false when nothing would be visible.
func composeImage(box layout.ImageBox, src image.Image, dpi float64) (*image.RGBA, region, bool) {
	sb := src.Bounds()
	if sb.Empty() || dpi <= 0 {
		return nil, region{}, false
	}
	dw, dh := box.DrawWidth(), box.DrawHeight()
	if dw <= 0 || dh <= 0 {
		return nil, region{}, false
	}

	// 图片中心在区域内的坐标（y 轴向下）
	zoneTop := box.Zone.Bottom + box.Zone.Height
	cx := box.CenterX - box.Zone.Left
	cy := zoneTop - box.CenterY

	rad := box.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	var reg region
	if box.Clip {
		reg = region{W: box.Zone.Width, H: box.Zone.Height}
	} else {
		hx := (math.Abs(cos)*dw + math.Abs(sin)*dh) / 2
		hy := (math.Abs(sin)*dw + math.Abs(cos)*dh) / 2
		reg = region{X: cx - hx, Y: cy - hy, W: 2 * hx, H: 2 * hy}
	}

	s := dpi / 72
	pw, ph := int(math.Round(reg.W*s)), int(math.Round(reg.H*s))
	if pw <= 0 || ph <= 0 {
		return nil, region{}, false
	}

	kx := dw / float64(sb.Dx())
	ky := dh / float64(sb.Dy())
	u0 := float64(sb.Min.X+sb.Max.X) / 2
	v0 := float64(sb.Min.Y+sb.Max.Y) / 2
	ox, oy := cx-reg.X, cy-reg.Y

	// 源像素 (u, v) → 目标像素：先缩放到绘制尺寸，再逆时针旋转，最后平移到中心
	m := f64.Aff3{
		s * cos * kx, s * sin * ky, s * (ox - cos*kx*u0 - sin*ky*v0),
		-s * sin * kx, s * cos * ky, s * (oy + sin*kx*u0 - cos*ky*v0),
	}
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.BiLinear.Transform(dst, m, src, sb, draw.Over, nil)
	return dst, reg, true
}
