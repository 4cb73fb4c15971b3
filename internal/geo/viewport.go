package geo

import (
	"log"
	"math"

	"github.com/deg-labs/resilience-agent/internal/model"
)

// Default framing when there are no positioned assets: central London at the
// original dashboard's zoom.
const (
	DefaultCenterLat = 51.5074
	DefaultCenterLon = -0.1278
	DefaultZoom      = 11

	// MaxZoom caps the computed zoom so a single asset or a tight cluster
	// does not over-zoom the map.
	MaxZoom = 15

	// boundsPadding expands the bounding box by this fraction of its span on
	// each side, with a floor so a degenerate box still has area.
	boundsPadding    = 0.10
	minPaddingDegree = 0.01
)

type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Viewport frames every positioned asset. Bounds is nil when the default
// viewport is in effect.
type Viewport struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      int     `json:"zoom"`
	Bounds    *Bounds `json:"bounds,omitempty"`
}

// FitViewport computes the minimal padded bounding region covering every
// asset with a valid coordinate. Assets with invalid coordinates are logged
// and excluded rather than failing the computation; with no valid assets at
// all the fixed default viewport is returned so the map is never left
// unpositioned. Deterministic and side-effect-free for identical input.
func FitViewport(assets []model.Asset) Viewport {
	b := Bounds{
		MinLat: math.Inf(1),
		MinLon: math.Inf(1),
		MaxLat: math.Inf(-1),
		MaxLon: math.Inf(-1),
	}
	valid := 0
	for _, a := range assets {
		if !ValidCoordinate(a.Lat, a.Lon) {
			log.Printf("geo: skipping asset %s with invalid coordinates (%v, %v)", a.ID, a.Lat, a.Lon)
			continue
		}
		valid++
		b.MinLat = math.Min(b.MinLat, a.Lat)
		b.MinLon = math.Min(b.MinLon, a.Lon)
		b.MaxLat = math.Max(b.MaxLat, a.Lat)
		b.MaxLon = math.Max(b.MaxLon, a.Lon)
	}

	if valid == 0 {
		return Viewport{CenterLat: DefaultCenterLat, CenterLon: DefaultCenterLon, Zoom: DefaultZoom}
	}

	padLat := math.Max((b.MaxLat-b.MinLat)*boundsPadding, minPaddingDegree)
	padLon := math.Max((b.MaxLon-b.MinLon)*boundsPadding, minPaddingDegree)
	b.MinLat -= padLat
	b.MaxLat += padLat
	b.MinLon -= padLon
	b.MaxLon += padLon

	return Viewport{
		CenterLat: (b.MinLat + b.MaxLat) / 2,
		CenterLon: (b.MinLon + b.MaxLon) / 2,
		Zoom:      zoomForSpan(b.MaxLat-b.MinLat, b.MaxLon-b.MinLon),
		Bounds:    &b,
	}
}

// zoomForSpan picks the largest web-mercator style zoom whose 360/2^z tile
// span still covers the wider of the two axes, capped at MaxZoom.
func zoomForSpan(latSpan, lonSpan float64) int {
	span := math.Max(latSpan, lonSpan)
	if span <= 0 {
		return MaxZoom
	}
	z := int(math.Floor(math.Log2(360 / span)))
	if z > MaxZoom {
		z = MaxZoom
	}
	if z < 1 {
		z = 1
	}
	return z
}

// ValidCoordinate reports whether a lat/lon pair can be placed on the map.
// Assets failing this check are excluded from the viewport and never drawn
// as positioned markers.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
