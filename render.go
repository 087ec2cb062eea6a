package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/paulmach/orb"

	"gps_flyover/geometry"
	"gps_flyover/timeline"
)

// --- Structs ---

// view is what the renderer shows for one frame: the camera target and the
// heading actually applied, with nil headings already resolved to the last
// one shown.
type view struct {
	Entry   timeline.Entry
	Target  orb.Point
	Heading float64
}

type scene struct {
	args   *Arguments
	font   *truetype.Font
	views  []view
	route  [][]geometry.TrackPoint
	total  float64
	scale  float64 // pixels per planar unit
	stable bool
}

// --- Camera Resolution ---

func cameraViews(anim *timeline.Animation) []view {
	frames := anim.Frames()
	views := make([]view, len(frames))
	target := geometry.ToPlanar(anim.Center())
	heading := 0.0
	for i, f := range frames {
		if f.Camera != nil {
			target = f.Camera.Target
			if f.Camera.Heading != nil {
				heading = *f.Camera.Heading
			}
		}
		views[i] = view{Entry: f, Target: target, Heading: heading}
	}
	return views
}

// newScene prepares rendering of anim. minSide is the calibration's minimum
// bounds side, so a tiny route is not zoomed in further than the replay
// itself assumed.
func newScene(anim *timeline.Animation, args *Arguments, font *truetype.Font, minSide float64) *scene {
	s := &scene{
		args:   args,
		font:   font,
		views:  cameraViews(anim),
		route:  anim.Segments(),
		total:  anim.TotalDistance(),
		stable: anim.Camera().Stable(),
	}
	size := geometry.ClampedSize(geometry.Bounds(geometry.PlanarPoints(geometry.Flatten(s.route))), minSide, 0)
	extent := size.Max() * 1.1
	if !s.stable {
		// following camera: show about half of the route around the marker
		extent = size.Max() * 0.5
	}
	s.scale = float64(args.WidgetSize) / extent
	return s
}

// --- Frame Rendering ---

func drawHeadingIcon(dc *gg.Context, x, y, size, lineWidth, heading float64) {
	dc.Push()
	dc.Translate(x, y)
	dc.SetLineWidth(lineWidth)
	dc.DrawCircle(0, 0, size/2)
	dc.Stroke()

	// the needle shows where north is on the rotated map
	dc.Rotate(gg.Radians(-heading))
	dc.MoveTo(0, -size/2.2)
	dc.LineTo(size/8, 0)
	dc.LineTo(-size/8, 0)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()
}

func (s *scene) toWidget(p, target orb.Point, radius float64) (float64, float64) {
	return radius + (p.X()-target.X())*s.scale, radius - (p.Y()-target.Y())*s.scale
}

func (s *scene) drawPolyline(dc *gg.Context, points []orb.Point, target orb.Point, radius float64) {
	if len(points) < 2 {
		return
	}
	x, y := s.toWidget(points[0], target, radius)
	dc.MoveTo(x, y)
	for _, p := range points[1:] {
		x, y = s.toWidget(p, target, radius)
		dc.LineTo(x, y)
	}
	dc.Stroke()
}

// pathSoFar returns, per segment, the planar points travelled up to e.
func (s *scene) pathSoFar(e timeline.Entry) [][]orb.Point {
	var paths [][]orb.Point
	for i, seg := range s.route {
		if i > e.Segment {
			break
		}
		var path []orb.Point
		for _, p := range seg {
			if p.Key >= e.Distance {
				break
			}
			path = append(path, p.Planar())
		}
		if i == e.Segment {
			path = append(path, geometry.ToPlanar(e.Position))
		}
		paths = append(paths, path)
	}
	return paths
}

func (s *scene) renderFrame(frameNum int) image.Image {
	v := s.views[frameNum]
	widgetRadiusPx := float64(s.args.WidgetSize) / 2.0

	// --- Map Layer (rotated so the camera heading points up) ---
	mapDC := gg.NewContext(s.args.WidgetSize, s.args.WidgetSize)
	mapDC.SetColor(color.RGBA{R: 40, G: 44, B: 52, A: 255})
	mapDC.Clear()
	mapDC.RotateAbout(gg.Radians(-v.Heading), widgetRadiusPx, widgetRadiusPx)

	mapDC.SetColor(s.args.RouteColor)
	mapDC.SetLineWidth(s.args.PathWidth / 2)
	for _, seg := range s.route {
		s.drawPolyline(mapDC, geometry.PlanarPoints(seg), v.Target, widgetRadiusPx)
	}

	mapDC.SetColor(s.args.PathColor)
	mapDC.SetLineWidth(s.args.PathWidth)
	for _, path := range s.pathSoFar(v.Entry) {
		s.drawPolyline(mapDC, path, v.Target, widgetRadiusPx)
	}

	markerX, markerY := s.toWidget(geometry.ToPlanar(v.Entry.Position), v.Target, widgetRadiusPx)
	mapDC.SetColor(color.RGBA{0, 0, 255, 255})
	mapDC.DrawPoint(markerX, markerY, 8)
	mapDC.Fill()
	mapDC.SetColor(color.White)
	mapDC.SetLineWidth(2)
	mapDC.DrawPoint(markerX, markerY, 8)
	mapDC.Stroke()

	// Crop circular widget
	mask := gg.NewContext(s.args.WidgetSize, s.args.WidgetSize)
	mask.DrawCircle(widgetRadiusPx, widgetRadiusPx, widgetRadiusPx)
	mask.Clip()
	mask.DrawImage(mapDC.Image(), 0, 0)

	// --- Final Frame Composition ---
	frameDC := gg.NewContext(s.args.VideoWidth, s.args.VideoHeight)
	mapPosX := float64(20)
	mapPosY := float64(20)
	frameDC.DrawImage(mask.Image(), int(mapPosX), int(mapPosY))

	borderWidth := float64(s.args.WidgetSize) * 0.04
	frameDC.SetColor(s.args.BorderColor)
	frameDC.SetLineWidth(borderWidth)
	frameDC.DrawCircle(mapPosX+widgetRadiusPx, mapPosY+widgetRadiusPx, widgetRadiusPx)
	frameDC.Stroke()

	// --- Indicators ---
	widgetWidth := float64(s.args.WidgetSize)
	valueFontSize := widgetWidth / 12.0
	unitFontSize := valueFontSize / 2.0
	iconSize := widgetWidth / 10.0

	valueFace := truetype.NewFace(s.font, &truetype.Options{Size: valueFontSize})
	unitFace := truetype.NewFace(s.font, &truetype.Options{Size: unitFontSize})

	row1Y := mapPosY + widgetWidth + valueFontSize*1.2
	frameDC.SetColor(s.args.IndicatorColor)
	drawHeadingIcon(frameDC, mapPosX+iconSize/2, row1Y-valueFontSize/2, iconSize, widgetWidth/150.0, v.Heading)

	frameDC.SetFontFace(valueFace)
	headingText := fmt.Sprintf("%.0f°", geometry.NormalizeAngle(v.Heading))
	frameDC.DrawString(headingText, mapPosX+iconSize*1.3, row1Y)

	frameText := fmt.Sprintf("frame %d / %d", v.Entry.Frame, len(s.views))
	frameDC.SetFontFace(unitFace)
	frameDC.DrawStringAnchored(frameText, mapPosX+widgetWidth, row1Y, 1, 0)

	// Distance Bar
	row2Y := row1Y + unitFontSize*1.2
	barWidth := widgetWidth
	barHeight := 20.0
	progress := 0.0
	if s.total > 0 {
		progress = math.Min(1, v.Entry.Distance/s.total)
	}
	frameDC.SetColor(color.RGBA{80, 80, 80, 255})
	frameDC.DrawRectangle(mapPosX, row2Y, barWidth, barHeight)
	frameDC.Fill()
	frameDC.SetColor(color.RGBA{100, 180, 255, 255})
	frameDC.DrawRectangle(mapPosX, row2Y, barWidth*progress, barHeight)
	frameDC.Fill()
	distText := fmt.Sprintf("%.2f / %.2f", v.Entry.Distance, s.total)
	frameDC.SetColor(s.args.IndicatorColor)
	frameDC.DrawStringAnchored(distText, mapPosX+barWidth/2, row2Y+barHeight/2, 0.5, 0.5)

	return frameDC.Image()
}
