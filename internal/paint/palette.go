package paint

import "image/color"

// Region is an inclusive rectangle in camera pixels.
type Region struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether (x, y) lies inside the region, edges included.
func (r Region) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Swatch is one selectable palette entry.
type Swatch struct {
	Name   string     `json:"name"`
	Region Region     `json:"region"`
	Color  color.RGBA `json:"color"`
}

// ModeButton selects an operating mode from the header band.
type ModeButton struct {
	Mode   string `json:"mode"`
	Region Region `json:"region"`
}

// DefaultColor is the brush color before any swatch is picked.
var DefaultColor = Pink

// ModeButtons are the header mode selectors.
var ModeButtons = []ModeButton{
	{Mode: "mouse", Region: Region{25, 50, 125, 100}},
	{Mode: "paint", Region: Region{155, 50, 255, 100}},
}

// Swatches are the color selectors shown in paint mode.
var Swatches = []Swatch{
	{Name: "red", Region: Region{305, 50, 355, 100}, Color: Red},
	{Name: "green", Region: Region{375, 50, 425, 100}, Color: Green},
	{Name: "blue", Region: Region{445, 50, 495, 100}, Color: Blue},
	{Name: "yellow", Region: Region{515, 50, 565, 100}, Color: Yellow},
	{Name: "pink", Region: Region{585, 50, 635, 100}, Color: Pink},
	{Name: "eraser", Region: Region{155, 110, 255, 130}, Color: Eraser},
}

// Selection is the outcome of a palette hit test.
type Selection struct {
	Mode  string
	Color *Swatch
}

// HitTest checks a fingertip against the header palette. Mode buttons are
// checked first; swatches only when colors is true.
func HitTest(x, y int, colors bool) (Selection, bool) {
	for _, b := range ModeButtons {
		if b.Region.Contains(x, y) {
			return Selection{Mode: b.Mode}, true
		}
	}
	if !colors {
		return Selection{}, false
	}
	for i := range Swatches {
		if Swatches[i].Region.Contains(x, y) {
			return Selection{Color: &Swatches[i]}, true
		}
	}
	return Selection{}, false
}

// SwatchByName looks up a swatch.
func SwatchByName(name string) (Swatch, bool) {
	for _, s := range Swatches {
		if s.Name == name {
			return s, true
		}
	}
	return Swatch{}, false
}
