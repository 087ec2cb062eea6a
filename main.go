package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/kr/pretty"
	"golang.org/x/image/font/gofont/goregular"

	"gps_flyover/geometry"
	"gps_flyover/timeline"
)

// --- Main Logic ---

func main() {
	args := parseArguments()
	setupTracing(args.TraceLevel, os.Stderr)

	segments, err := loadSegments(args)
	if err != nil {
		log.Fatalf("Error loading track: %v", err)
	}

	cal, err := loadCalibration(args.CalibrationFile)
	if err != nil {
		log.Fatalf("Error loading calibration: %v", err)
	}

	anim, err := timeline.Build(segments, args.Framerate, cal)
	if err != nil {
		log.Fatalf("Error building replay: %v", err)
	}
	log.Printf("Replay: %d segments, %.1f s, %d frames, camera turns at %v",
		len(anim.Segments()), anim.Duration(), anim.FrameCount(), anim.Camera().Turns())

	if args.Debug {
		printTimeline(os.Stdout, anim)
		return
	}

	if args.GeoJSONFile != "" {
		if err := writeGeoJSON(args.GeoJSONFile, anim); err != nil {
			log.Fatalf("Error writing GeoJSON: %v", err)
		}
		log.Printf("Saved %s", args.GeoJSONFile)
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	s := newScene(anim, args, font, cal.MinBoundsSide)

	if args.HeadingPlotFile != "" {
		if err := writeHeadingPlot(args.HeadingPlotFile, s.views); err != nil {
			log.Fatalf("Error writing heading plot: %v", err)
		}
		log.Printf("Saved %s", args.HeadingPlotFile)
	}

	if len(s.views) == 0 {
		log.Fatal("Nothing to render: the replay has no frames.")
	}

	if args.RenderFirstFrame {
		log.Println("Rendering first frame only...")
		img := s.renderFrame(0)
		if err := gg.SavePNG("first_frame.png", img); err != nil {
			log.Fatal(err)
		}
		log.Println("Saved first_frame.png")
		return
	}

	runVideoPipeline(s, args)

	fmt.Printf("\nVideo saved to %s\n", args.OutputFile)
}

func printTimeline(w io.Writer, anim *timeline.Animation) {
	center := anim.Center()
	fmt.Fprintf(w, "Center: %.6f, %.6f  Split indexes: %v  Frame rate: %.2f\n",
		center.Lat, center.Lon, anim.SplitIndexes(), anim.FrameRate())
	route := anim.Camera()
	fmt.Fprintf(w, "Camera: %d points, turns %v, stable %v\n", len(route.Points()), route.Turns(), route.Stable())
	for _, e := range anim.Entries() {
		if e.IsOriginal() {
			fmt.Fprintf(w, "Point: Dist %.4f, Segment %d, Pos %.6f, %.6f\n",
				e.Distance, e.Segment, e.Position.Lat, e.Position.Lon)
			continue
		}
		heading := "-"
		if e.Camera != nil && e.Camera.Heading != nil {
			heading = fmt.Sprintf("%.2f", geometry.NormalizeAngle(*e.Camera.Heading))
		}
		fmt.Fprintf(w, "Frame %d: Dist %.4f, Segment %d, Pos %.6f, %.6f, Heading %s\n",
			e.Frame, e.Distance, e.Segment, e.Position.Lat, e.Position.Lon, heading)
		if e.Camera != nil {
			fmt.Fprintf(w, "%# v\n", pretty.Formatter(*e.Camera))
		}
	}
}
