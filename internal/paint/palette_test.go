package paint

import "testing"

func TestRegion_ContainsIsInclusive(t *testing.T) {
	r := Region{25, 50, 125, 100}
	tests := []struct {
		x, y int
		want bool
	}{
		{25, 50, true},
		{125, 100, true},
		{75, 75, true},
		{24, 75, false},
		{126, 75, false},
		{75, 49, false},
		{75, 101, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitTest(t *testing.T) {
	tests := []struct {
		name      string
		x, y      int
		colors    bool
		wantOK    bool
		wantMode  string
		wantColor string
	}{
		{"mouse button", 30, 60, false, true, "mouse", ""},
		{"paint button", 255, 100, true, true, "paint", ""},
		{"red in paint mode", 330, 75, true, true, "", "red"},
		{"red ignored in mouse mode", 330, 75, false, false, "", ""},
		{"eraser", 200, 120, true, true, "", "eraser"},
		{"gap between swatches", 365, 75, true, false, "", ""},
		{"below header", 330, 140, true, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok := HitTest(tt.x, tt.y, tt.colors)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if sel.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", sel.Mode, tt.wantMode)
			}
			name := ""
			if sel.Color != nil {
				name = sel.Color.Name
			}
			if name != tt.wantColor {
				t.Errorf("Color = %q, want %q", name, tt.wantColor)
			}
		})
	}
}

func TestEraserSwatchUsesEraserThickness(t *testing.T) {
	s, ok := SwatchByName("eraser")
	if !ok {
		t.Fatal("eraser swatch missing")
	}
	b := Brush{Color: s.Color, Thickness: 7, EraserThickness: 50}
	if b.Width() != 50 {
		t.Errorf("Width() = %d, want 50", b.Width())
	}
	if _, ok := SwatchByName("purple"); ok {
		t.Error("unexpected swatch")
	}
}
