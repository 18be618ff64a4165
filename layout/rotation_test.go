package layout

import (
	"math"
	"testing"
)

const marginEps = 1e-9

func geometry(w, h, lw, lh, rotation float64) ImageGeometry {
	return ImageGeometry{Width: w, Height: h, LastWidth: lw, LastHeight: lh, Rotation: rotation}
}

func TestComputeMarginCases(t *testing.T) {
	cases := []struct {
		name  string
		g     ImageGeometry
		wantX float64
		wantY float64
	}{
		// 两轴都超出：X 方向超出更多，作为驱动轴
		{"both axes exceed", geometry(100, 50, 100, 50, 350), 2.086085749088907, 1.0430428745444535},
		{"larger clockwise turn", geometry(100, 50, 100, 50, 10), 15.865682891998372, 7.932841445999186},
		// Y 方向自身余量足够，使用旋转边距原值
		{"one axis covered", geometry(100, 50, 100, 80, 350), 2.086085749088907, 1.6688685992711259},
		{"both axes covered", geometry(100, 50, 140, 70, 350), 0, 0},
		{"image smaller than zone", geometry(100, 50, 60, 30, 350), 22.08608574908891, 11.043042874544454},
		{"half turn", geometry(100, 50, 80, 40, 180), 158.5562705416416, 79.2781352708208},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeMargin(tc.g, DefaultFlags())
			if math.Abs(got.X-tc.wantX) > marginEps || math.Abs(got.Y-tc.wantY) > marginEps {
				t.Fatalf("margin mismatch: got=(%g, %g) want=(%g, %g)", got.X, got.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestComputeMarginNoRotation(t *testing.T) {
	for _, stored := range []float64{0, 360, 720} {
		for _, g := range []ImageGeometry{
			geometry(100, 50, 120, 60, stored),
			geometry(100, 50, 100, 50, stored),
			geometry(100, 50, 80, 40, stored),
		} {
			if got := ComputeMargin(g, DefaultFlags()); got != (Margin{}) {
				t.Fatalf("stored angle %g should not zoom, got %+v for %+v", stored, got, g)
			}
		}
	}
}

func TestComputeMarginFlags(t *testing.T) {
	g := geometry(100, 50, 100, 50, 10)
	for _, flags := range []Flags{
		{Rotate: false, ZoomOnRotate: true},
		{Rotate: true, ZoomOnRotate: false},
		{},
	} {
		if got := ComputeMargin(g, flags); got != (Margin{}) {
			t.Fatalf("flags %+v should disable zoom, got %+v", flags, got)
		}
	}
}

func TestComputeMarginDegenerate(t *testing.T) {
	for _, g := range []ImageGeometry{
		geometry(0, 50, 100, 50, 30),
		geometry(100, 0, 100, 50, 30),
		geometry(100, 50, 0, 50, 30),
		geometry(100, 50, 100, 0, 30),
		geometry(0, 0, 0, 0, 30),
	} {
		if got := ComputeMargin(g, DefaultFlags()); got != (Margin{}) {
			t.Fatalf("degenerate geometry %+v should give zero margin, got %+v", g, got)
		}
	}
}

func TestComputeMarginNonNegative(t *testing.T) {
	samples := []ImageGeometry{
		geometry(100, 50, 120, 60, 0),
		geometry(10, 80, 5, 90, 0),
		geometry(50, 50, 40, 40, 0),
		geometry(200, 30, 210, 35, 0),
		geometry(30, 200, 31, 260, 0),
	}
	for _, g := range samples {
		for stored := 0.0; stored <= 720; stored += 0.5 {
			g.Rotation = stored
			m := ComputeMargin(g, DefaultFlags())
			if m.X < 0 || m.Y < 0 || math.IsNaN(m.X) || math.IsNaN(m.Y) {
				t.Fatalf("negative or NaN margin %+v for %+v", m, g)
			}
		}
	}
}

// 宽高互换并取反角度后，X 与 Y 边距互换。
func TestComputeMarginMirror(t *testing.T) {
	for _, theta := range []float64{10, 30, 45, 80, 135, 200} {
		a := ComputeMargin(geometry(100, 50, 120, 70, 360-theta), DefaultFlags())
		b := ComputeMargin(geometry(50, 100, 70, 120, 360+theta), DefaultFlags())
		if math.Abs(a.X-b.Y) > 1e-6 || math.Abs(a.Y-b.X) > 1e-6 {
			t.Fatalf("theta=%g mirror mismatch: %+v vs %+v", theta, a, b)
		}
	}
}

// AxisY 的取值与 AxisX 不同，且符合转置坐标系下的独立计算结果。
func TestRotationMarginAxisYValues(t *testing.T) {
	cases := []struct {
		angle, want float64
	}{
		{10, 18.594331978125865},
		{-10, 15.477917430231798},
	}
	for _, c := range cases {
		got := RotationMargin(100, 50, c.angle, AxisY)
		if math.Abs(got-c.want) > marginEps {
			t.Fatalf("%g°: got %.15g want %.15g", c.angle, got, c.want)
		}
		if x := RotationMargin(100, 50, c.angle, AxisX); math.Abs(x-got) < 1 {
			t.Fatalf("%g°: AxisY %g should differ from AxisX %g on a non-square zone", c.angle, got, x)
		}
	}
}

func TestRotationMarginKnownValues(t *testing.T) {
	if got := RotationMargin(100, 50, 10, AxisX); math.Abs(got-2.086085749088907) > marginEps {
		t.Fatalf("10°: got %g", got)
	}
	if got := RotationMargin(100, 50, 350, AxisX); math.Abs(got-15.865682891998372) > marginEps {
		t.Fatalf("350°: got %g", got)
	}
	if got := RotationMargin(100, 50, 0, AxisX); got != 0 {
		t.Fatalf("0°: got %g", got)
	}
}

// 正方形旋转 90° 时两轴角色互换，边距相同。
func TestComputeMarginSquareQuarterTurn(t *testing.T) {
	for _, stored := range []float64{90, 270} {
		m := ComputeMargin(geometry(100, 100, 100, 100, stored), DefaultFlags())
		if m.X <= 0 || math.Abs(m.X-m.Y) > marginEps {
			t.Fatalf("stored=%g: expected equal positive margins, got %+v", stored, m)
		}
	}
}
