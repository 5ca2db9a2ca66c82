package worksheet

import (
	"context"
	"testing"
)

func TestRender_FilledRegionUsesPaletteColor(t *testing.T) {
	pixels := make([]byte, 10*10*4)
	for i := 0; i < 10*10; i++ {
		o := i * 4
		pixels[o], pixels[o+1], pixels[o+2], pixels[o+3] = 200, 10, 10, 255
	}
	processed, err := Process(context.Background(), pixels, 10, 10, Options{MaxColors: 4})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	out := Render(processed, nil)
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("bounds = %v, want 10x10", out.Bounds())
	}

	filled := map[int]bool{processed.Regions[0].ID: true}
	filledOut := Render(processed, filled)
	r, g, b, _ := filledOut.At(5, 5).RGBA()
	if r>>8 == 255 && g>>8 == 255 && b>>8 == 255 {
		t.Error("filled region rendered as unfilled white")
	}
}

func TestRender_UnfilledRegionIsWhite(t *testing.T) {
	pixels := make([]byte, 10*10*4)
	for i := 0; i < 10*10; i++ {
		o := i * 4
		pixels[o], pixels[o+1], pixels[o+2], pixels[o+3] = 50, 50, 200, 255
	}
	processed, err := Process(context.Background(), pixels, 10, 10, Options{MaxColors: 4})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	out := Render(processed, nil)
	r, g, b, _ := out.At(0, 0).RGBA()
	interior := r>>8 == 255 && g>>8 == 255 && b>>8 == 255
	border := r>>8 == 0 && g>>8 == 0 && b>>8 == 0
	if !interior && !border {
		t.Errorf("pixel (0,0) = (%d,%d,%d), want white interior or black border", r>>8, g>>8, b>>8)
	}
}
