package rich

import (
	"image"

	"github.com/rjkroege/richui/markup"
)

// HitRegion is a clickable rectangle in final layout coordinates.
type HitRegion struct {
	Rect    image.Rectangle
	Trigger markup.Trigger
}

// HitRegionTable holds the regions of one layout pass in layout order.
// Regions never overlap.
type HitRegionTable []HitRegion

// At returns the trigger of the first region containing pt.
func (t HitRegionTable) At(pt image.Point) (markup.Trigger, bool) {
	for _, r := range t {
		if pt.In(r.Rect) {
			return r.Trigger, true
		}
	}
	return markup.Trigger{}, false
}

// buildRegions collects a region for every triggered element that can be
// clicked.
func buildRegions(elems []Element) HitRegionTable {
	var regions HitRegionTable
	for _, e := range elems {
		if e.Kind == ElementRule || e.Style.Trigger.IsZero() || e.Rect.Empty() {
			continue
		}
		regions = append(regions, HitRegion{Rect: e.Rect, Trigger: e.Style.Trigger})
	}
	return regions
}
