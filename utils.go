package main

import (
	"flag"
	"fmt"
	"image/color"
	"runtime"
)

// --- Structs ---

type Arguments struct {
	GpxFile          string
	RecordsFile      string
	OutputFile       string
	CalibrationFile  string
	GeoJSONFile      string
	HeadingPlotFile  string
	VideoWidth       int
	VideoHeight      int
	Bitrate          string
	Workers          int
	Framerate        float64
	WidgetSize       int
	PathWidth        float64
	RouteColor       color.Color
	PathColor        color.Color
	BorderColor      color.Color
	IndicatorColor   color.Color
	RenderFirstFrame bool
	Debug            bool
	TraceLevel       string
}

// --- Argument Parsing ---

func parseArguments() *Arguments {
	args := &Arguments{}
	var routeColorStr, pathColorStr, borderColorStr, indicatorColorStr string

	flag.StringVar(&args.GpxFile, "gpx", "", "Path to the GPX file.")
	flag.StringVar(&args.RecordsFile, "records", "", "Path to a JSON file of record segments (used when -gpx is empty).")
	flag.StringVar(&args.OutputFile, "o", "flyover.mp4", "Output video file name.")
	flag.StringVar(&args.CalibrationFile, "calibration", "", "YAML file overriding replay calibration constants.")
	flag.StringVar(&args.GeoJSONFile, "geojson", "", "Write the simplified route and frame timeline as GeoJSON.")
	flag.StringVar(&args.HeadingPlotFile, "heading-plot", "", "Write a PNG plot of the camera heading per frame.")
	flag.StringVar(&args.Bitrate, "bitrate", "5M", "Video bitrate (e.g., 5M).")
	flag.IntVar(&args.Workers, "workers", runtime.NumCPU(), "Number of parallel workers for frame generation.")
	flag.Float64Var(&args.Framerate, "framerate", 30, "Frames per second of replay.")
	flag.IntVar(&args.WidgetSize, "widget-size", 600, "Map widget diameter in pixels.")
	flag.Float64Var(&args.PathWidth, "path-width", 8, "Width of the drawn path.")
	flag.StringVar(&routeColorStr, "route-color", "#9E9E9E", "Color of the whole route (hex).")
	flag.StringVar(&pathColorStr, "path-color", "#FF0000", "Color of the path travelled so far (hex).")
	flag.StringVar(&borderColorStr, "border-color", "#ff9800", "Color of the map border (hex).")
	flag.StringVar(&indicatorColorStr, "indicator-color", "#FFFFFF", "Color of the text indicators (hex).")
	flag.BoolVar(&args.RenderFirstFrame, "render-first-frame", false, "Render only the first frame and save as first_frame.png.")
	flag.BoolVar(&args.Debug, "debug", false, "Print the replay timeline instead of rendering.")
	flag.StringVar(&args.TraceLevel, "trace", "", "Engine trace level (error, info, debug). Defaults to debug with -debug.")

	flag.Parse()

	if args.Debug && args.TraceLevel == "" {
		args.TraceLevel = "debug"
	}

	args.VideoWidth = args.WidgetSize + 40
	args.VideoHeight = args.WidgetSize + 160

	args.RouteColor, _ = parseHexColor(routeColorStr)
	args.PathColor, _ = parseHexColor(pathColorStr)
	args.BorderColor, _ = parseHexColor(borderColorStr)
	args.IndicatorColor, _ = parseHexColor(indicatorColorStr)

	return args
}

func parseHexColor(s string) (color.Color, error) {
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return color.Black, err
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
