package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"gps_flyover/timeline"
)

// --- GeoJSON Export ---

func timelineFeatures(anim *timeline.Animation) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, seg := range anim.Segments() {
		line := make(orb.LineString, 0, len(seg))
		for _, p := range seg {
			line = append(line, p.Pos.Point())
		}
		f := geojson.NewFeature(line)
		f.Properties["segment"] = i
		f.Properties["points"] = len(seg)
		fc.Append(f)
	}

	for _, e := range anim.Frames() {
		f := geojson.NewFeature(e.Position.Point())
		f.Properties["frame"] = e.Frame
		f.Properties["distance"] = e.Distance
		f.Properties["segment"] = e.Segment
		if e.Camera != nil && e.Camera.Heading != nil {
			f.Properties["heading"] = *e.Camera.Heading
		}
		fc.Append(f)
	}

	return fc
}

func writeGeoJSON(path string, anim *timeline.Animation) error {
	fc := timelineFeatures(anim)
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write GeoJSON file: %w", err)
	}
	return nil
}
