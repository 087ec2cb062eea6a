package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/tkrajina/gpxgo/gpx"

	"gps_flyover/timeline"
)

// --- Structs ---

// Record is one exported tracker record. Field names are the tracker's
// numeric column ids.
type Record struct {
	Lat      *float64 `json:"2"`
	Lon      *float64 `json:"3"`
	Distance *float64 `json:"7"`
}

// --- Input Parsing ---

// parseGpx returns one segment per GPX track segment. The key of every
// point is the distance travelled in km, continuing across segments without
// counting the jump between them.
func parseGpx(filePath string) ([][]timeline.RawPoint, error) {
	gpxFile, err := gpx.ParseFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX file: %w", err)
	}
	return gpxSegments(gpxFile), nil
}

func gpxSegments(gpxFile *gpx.GPX) [][]timeline.RawPoint {
	var segments [][]timeline.RawPoint
	var distance float64
	for _, track := range gpxFile.Tracks {
		for _, segment := range track.Segments {
			seg := make([]timeline.RawPoint, 0, len(segment.Points))
			for i, p := range segment.Points {
				if i > 0 {
					prev := segment.Points[i-1]
					distance += haversine(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
				}
				lat, lon, d := p.Latitude, p.Longitude, distance
				seg = append(seg, timeline.RawPoint{Lat: &lat, Lon: &lon, Distance: &d})
			}
			segments = append(segments, seg)
		}
	}
	return segments
}

// parseRecords reads a JSON array of record segments.
func parseRecords(filePath string) ([][]timeline.RawPoint, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	var raw [][]Record
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse records file: %w", err)
	}
	segments := make([][]timeline.RawPoint, len(raw))
	for i, recs := range raw {
		segments[i] = make([]timeline.RawPoint, len(recs))
		for j, r := range recs {
			segments[i][j] = timeline.RawPoint{Lat: r.Lat, Lon: r.Lon, Distance: r.Distance}
		}
	}
	return segments, nil
}

func loadSegments(args *Arguments) ([][]timeline.RawPoint, error) {
	switch {
	case args.GpxFile != "":
		return parseGpx(args.GpxFile)
	case args.RecordsFile != "":
		return parseRecords(args.RecordsFile)
	}
	return nil, fmt.Errorf("no input: pass -gpx or -records")
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371 // Earth radius in kilometers
	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}
