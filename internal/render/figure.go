// Package render draws a posed figure. The vector rasterizer produces the
// RGBA frames the capture sink encodes; the terminal projection backs the
// posing UI. Both walk the same skeleton geometry from the pose package.
package render

import (
	"image"
	"image/draw"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/PDC-hub/Stickman/internal/pose"
)

// Renderer turns a pose into a frame ready for the capture sink.
type Renderer interface {
	Render(p pose.Pose) *image.RGBA
}

// FigureRenderer rasterizes the stick figure with the gg software
// renderer: stroked lines for bones, filled circles for joints, a larger
// circle for the head. Output is deterministic for a given pose.
type FigureRenderer struct {
	Width  int
	Height int

	// FigureScale is the figure height as a fraction of the frame
	// height. Zero means the default 0.8.
	FigureScale float64
}

// EvenDimensions rounds width and height up to the nearest even values.
// yuv420p subsamples chroma in 2x2 blocks, so capture dimensions must be
// even; callers opening a capture session use this to agree with the
// renderer on the frame size.
func EvenDimensions(width, height int) (int, int) {
	if width%2 != 0 {
		width++
	}
	if height%2 != 0 {
		height++
	}
	return width, height
}

// NewFigureRenderer returns a renderer for even-dimension frames; odd
// dimensions are rounded up so yuv420p encoding does not reject them.
func NewFigureRenderer(width, height int) *FigureRenderer {
	width, height = EvenDimensions(width, height)
	return &FigureRenderer{Width: width, Height: height}
}

// Render implements Renderer.
func (r *FigureRenderer) Render(p pose.Pose) *image.RGBA {
	dc := gg.NewContext(r.Width, r.Height)
	defer dc.Close()

	dc.ClearWithColor(gg.RGB(0.09, 0.09, 0.12))

	scale := r.FigureScale
	if scale == 0 {
		scale = 0.8
	}
	unit := float64(r.Height) * scale
	cx := float64(r.Width) / 2
	cy := float64(r.Height) / 2

	pts := pose.Positions(p)
	at := func(j pose.Joint) (float64, float64) {
		pt := pts[j]
		return cx + pt.X*unit, cy + pt.Y*unit
	}

	// Bones.
	dc.SetRGB(0.92, 0.92, 0.95)
	dc.SetLineWidth(float64(r.Height) / 90)
	dc.SetLineCap(gg.LineCapRound)
	for _, j := range pose.Joints() {
		bone, ok := pose.Skeleton[j]
		if !ok || j == pose.Head {
			continue
		}
		x1, y1 := at(bone.Parent)
		x2, y2 := at(j)
		dc.DrawLine(x1, y1, x2, y2)
	}
	_ = dc.Stroke()

	// Head: a circle centered past the neck along the head bone.
	hx, hy := at(pose.Head)
	dc.DrawCircle(hx, hy, unit*0.07)
	_ = dc.Stroke()

	// Joint markers.
	dc.SetRGB(0.35, 0.65, 1.0)
	for _, j := range pose.Joints() {
		if j == pose.Head {
			continue
		}
		x, y := at(j)
		dc.DrawCircle(x, y, float64(r.Height)/140)
		_ = dc.Fill()
	}

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}

// Fit scales img to the given even dimensions, preserving pixels with a
// bilinear kernel. It returns img unchanged when the size already matches.
func Fit(img *image.RGBA, width, height int) *image.RGBA {
	width, height = EvenDimensions(width, height)
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}
