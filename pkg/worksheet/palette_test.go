package worksheet

import (
	"fmt"
	"testing"
)

func TestCompactPalette_DropsUnusedCentroids(t *testing.T) {
	centroids := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 0, B: 0}, // unused, should be dropped
		{R: 0, G: 255, B: 0},
	}
	assignments := []int{0, 0, 2, 2}

	palette, remapped := compactPalette(centroids, assignments)

	if len(palette) != 2 {
		t.Fatalf("len(palette) = %d, want 2", len(palette))
	}
	if palette[0].ID != 1 || palette[1].ID != 2 {
		t.Errorf("palette IDs = %d,%d, want 1,2", palette[0].ID, palette[1].ID)
	}
	if palette[0].RGB != (RGB{R: 255, G: 0, B: 0}) {
		t.Errorf("palette[0].RGB = %+v, want red", palette[0].RGB)
	}
	if palette[1].RGB != (RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("palette[1].RGB = %+v, want green", palette[1].RGB)
	}

	want := []int{0, 0, 1, 1}
	for i, w := range want {
		if remapped[i] != w {
			t.Errorf("remapped[%d] = %d, want %d", i, remapped[i], w)
		}
	}
}

func TestHexString(t *testing.T) {
	got := hexString(RGB{R: 255, G: 0, B: 16})
	if got != "#ff0010" {
		t.Errorf("hexString = %s, want #ff0010", got)
	}
}

func TestTextColorFor(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{R: 255, G: 255, B: 255}, "black"}, // YIQ 255 >= 128
		{RGB{R: 0, G: 0, B: 0}, "white"},       // YIQ 0 < 128
		{RGB{R: 0, G: 0, B: 255}, "white"},     // YIQ = 114*255/1000 = 29 < 128
		{RGB{R: 0, G: 255, B: 0}, "black"},     // YIQ = 587*255/1000 = 149 >= 128
	}
	for _, tt := range tests {
		got := textColorFor(tt.rgb)
		if got != tt.want {
			t.Errorf("textColorFor(%+v) = %s, want %s", tt.rgb, got, tt.want)
		}
	}
}

func TestHexRoundTripsToRGB(t *testing.T) {
	rgb := RGB{R: 12, G: 200, B: 7}
	hex := hexString(rgb)

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		t.Fatalf("parsing %s: %v", hex, err)
	}
	if byte(r) != rgb.R || byte(g) != rgb.G || byte(b) != rgb.B {
		t.Errorf("hex %s parsed back to (%d,%d,%d), want %+v", hex, r, g, b, rgb)
	}
}
