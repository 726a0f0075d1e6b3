// Package msa resolves metro-area names and boundaries from the static
// Florida MSA GeoJSON file. The file is a read-only lookup collaborator
// produced by the offline boundary pipeline.
package msa

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/wage"
)

// UnknownName is returned when a CBSA has no feature in the boundary file.
const UnknownName = "Unknown MSA"

// codeProperties are probed in order for a feature's CBSA code; boundary
// files from different pipeline vintages disagree on the property name.
var codeProperties = []string{"CBSAFP", "CBSA", "cbsa_code", "GEOID"}

// nameProperties are probed in order for a feature's display name.
var nameProperties = []string{"NAME", "cbsa_title", "name"}

// Area is one metro area from the boundary file.
type Area struct {
	Code     string
	Name     string
	geometry geom.T
}

// Index lazily loads the boundary file and answers code→name and
// containment queries. Safe for concurrent use.
type Index struct {
	path string

	once    sync.Once
	loadErr error
	areas   map[string]*Area // keyed by normalized CBSA code
}

// NewIndex creates an Index over the given GeoJSON path. The file is read
// on first use, not at construction.
func NewIndex(path string) *Index {
	return &Index{path: path}
}

func (x *Index) load() error {
	x.once.Do(func() {
		data, err := os.ReadFile(x.path)
		if err != nil {
			x.loadErr = eris.Wrapf(err, "msa: read boundary file %s", x.path)
			return
		}

		var fc geojson.FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			x.loadErr = eris.Wrap(err, "msa: parse boundary file")
			return
		}

		x.areas = make(map[string]*Area, len(fc.Features))
		for _, f := range fc.Features {
			code := stringProperty(f.Properties, codeProperties)
			if code == "" {
				continue
			}
			x.areas[wage.NormalizeAreaCode(code)] = &Area{
				Code:     code,
				Name:     stringProperty(f.Properties, nameProperties),
				geometry: f.Geometry,
			}
		}
		zap.L().Info("msa: boundary index loaded",
			zap.String("path", x.path),
			zap.Int("areas", len(x.areas)),
		)
	})
	return x.loadErr
}

// Name returns the display name for a CBSA, or UnknownName when the area is
// not in the boundary file or the file cannot be read. Name lookups never
// fail hard; the name is decoration on responses whose real payload comes
// from elsewhere.
func (x *Index) Name(cbsa string) string {
	if err := x.load(); err != nil {
		zap.L().Warn("msa: name lookup degraded", zap.Error(err))
		return UnknownName
	}
	area, ok := x.areas[wage.NormalizeAreaCode(cbsa)]
	if !ok || area.Name == "" {
		return UnknownName
	}
	return area.Name
}

// Contains reports whether the point (lon, lat) falls inside the CBSA's
// boundary. Unknown areas contain nothing.
func (x *Index) Contains(cbsa string, lon, lat float64) (bool, error) {
	if err := x.load(); err != nil {
		return false, err
	}
	area, ok := x.areas[wage.NormalizeAreaCode(cbsa)]
	if !ok || area.geometry == nil {
		return false, nil
	}
	return containsPoint(area.geometry, geom.Coord{lon, lat}), nil
}

// containsPoint tests polygon and multi-polygon geometries: inside the
// exterior ring and outside every hole.
func containsPoint(g geom.T, p geom.Coord) bool {
	switch geometry := g.(type) {
	case *geom.Polygon:
		return polygonContains(geometry, p)
	case *geom.MultiPolygon:
		for i := 0; i < geometry.NumPolygons(); i++ {
			if polygonContains(geometry.Polygon(i), p) {
				return true
			}
		}
	}
	return false
}

func polygonContains(poly *geom.Polygon, p geom.Coord) bool {
	if poly.NumLinearRings() == 0 {
		return false
	}
	exterior := poly.LinearRing(0)
	if !xy.IsPointInRing(poly.Layout(), p, exterior.FlatCoords()) {
		return false
	}
	for i := 1; i < poly.NumLinearRings(); i++ {
		if xy.IsPointInRing(poly.Layout(), p, poly.LinearRing(i).FlatCoords()) {
			return false
		}
	}
	return true
}

func stringProperty(props map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
