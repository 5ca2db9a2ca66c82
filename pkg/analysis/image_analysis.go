// Package analysis provides pre-processing hints for the worksheet pipeline:
// brightness quantization, Sobel edge detection, and a palette-size
// heuristic derived from edge density. SuggestMaxColors's output is the one
// piece of this package that actually reaches worksheet.Process: a busy
// image suggests a larger starting palette than a flat one, and
// process_worksheet uses it as the default maxColors when a caller doesn't
// supply one.
package analysis

import (
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
)

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BrightnessMap represents quantized brightness levels across an image.
type BrightnessMap struct {
	Grid   [][]int           `json:"grid"`   // 2D array of brightness levels
	Legend map[string]string `json:"legend"` // Maps level number to description
}

// EdgeMap represents detected edges in an image.
type EdgeMap struct {
	Grid       [][]int    `json:"grid"`        // 2D array where 1 = edge, 0 = no edge
	MajorEdges []EdgeLine `json:"major_edges"` // Significant edge contours
	Density    float64    `json:"density"`     // Fraction of interior pixels flagged as edges
}

// EdgeLine represents a detected edge line.
type EdgeLine struct {
	From     Point   `json:"from"`     // Starting point
	To       Point   `json:"to"`       // Ending point
	Strength float64 `json:"strength"` // Edge strength 0-100
}

// GenerateBrightnessMap creates a quantized brightness map from an image.
// The image is downsampled to targetW x targetH and brightness is quantized into numLevels.
func GenerateBrightnessMap(img image.Image, targetW, targetH, numLevels int) (*BrightnessMap, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("target dimensions must be positive, got %dx%d", targetW, targetH)
	}
	if numLevels < 2 || numLevels > 256 {
		return nil, fmt.Errorf("numLevels must be between 2 and 256, got %d", numLevels)
	}

	resized := resize.Resize(uint(targetW), uint(targetH), img, resize.Bilinear)

	grid := make([][]int, targetH)
	for y := 0; y < targetH; y++ {
		grid[y] = make([]int, targetW)
		for x := 0; x < targetW; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

			// Rec. 709 luma coefficients.
			gray := 0.2126*float64(r8) + 0.7152*float64(g8) + 0.0722*float64(b8)

			level := int(gray / 256.0 * float64(numLevels))
			if level >= numLevels {
				level = numLevels - 1
			}
			grid[y][x] = level
		}
	}

	legend := make(map[string]string)
	for i := 0; i < numLevels; i++ {
		ratio := float64(i) / float64(numLevels-1)
		var desc string
		switch {
		case ratio < 0.2:
			desc = "darkest"
		case ratio < 0.4:
			desc = "dark"
		case ratio < 0.6:
			desc = "mid"
		case ratio < 0.8:
			desc = "light"
		default:
			desc = "lightest"
		}
		legend[fmt.Sprintf("%d", i)] = desc
	}

	return &BrightnessMap{Grid: grid, Legend: legend}, nil
}

// DetectEdges applies Sobel edge detection to an image.
// Returns a binary edge map where 1 = edge detected, 0 = no edge, along
// with the fraction of interior pixels flagged as an edge (Density), which
// SuggestMaxColors uses to size a starting palette.
// If targetW and targetH are > 0, the image is downsampled before edge detection.
func DetectEdges(img image.Image, threshold int, targetW, targetH int) (*EdgeMap, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be between 0 and 255, got %d", threshold)
	}

	processImg := img
	if targetW > 0 && targetH > 0 {
		processImg = resize.Resize(uint(targetW), uint(targetH), img, resize.Bilinear)
	}

	bounds := processImg.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gray := image.NewGray(bounds)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.Set(x, y, processImg.At(x, y))
		}
	}

	edgeMap := make([][]int, height)
	gradientMagnitudes := make([][]float64, height)
	for y := 0; y < height; y++ {
		edgeMap[y] = make([]int, width)
		gradientMagnitudes[y] = make([]float64, width)
	}

	edgeCount, interiorCount := 0, 0

	// Sobel kernels: Gx detects vertical edges, Gy detects horizontal edges.
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			nw := int(gray.GrayAt(x-1, y-1).Y)
			n := int(gray.GrayAt(x, y-1).Y)
			ne := int(gray.GrayAt(x+1, y-1).Y)
			w := int(gray.GrayAt(x-1, y).Y)
			e := int(gray.GrayAt(x+1, y).Y)
			sw := int(gray.GrayAt(x-1, y+1).Y)
			s := int(gray.GrayAt(x, y+1).Y)
			se := int(gray.GrayAt(x+1, y+1).Y)

			gx := -nw + ne - 2*w + 2*e - sw + se
			gy := -nw - 2*n - ne + sw + 2*s + se
			magnitude := math.Sqrt(float64(gx*gx + gy*gy))
			gradientMagnitudes[y][x] = magnitude

			interiorCount++
			if magnitude > float64(threshold) {
				edgeMap[y][x] = 1
				edgeCount++
			}
		}
	}

	density := 0.0
	if interiorCount > 0 {
		density = float64(edgeCount) / float64(interiorCount)
	}

	return &EdgeMap{
		Grid:       edgeMap,
		MajorEdges: findMajorEdges(edgeMap, gradientMagnitudes, width, height),
		Density:    density,
	}, nil
}

// findMajorEdges identifies significant edge contours from the edge map by
// scanning for continuous runs of flagged pixels along each axis.
func findMajorEdges(edgeMap [][]int, magnitudes [][]float64, width, height int) []EdgeLine {
	majorEdges := make([]EdgeLine, 0)
	const minLength = 5

	for y := 1; y < height-1; y++ {
		startX := -1
		for x := 1; x < width-1; x++ {
			if edgeMap[y][x] == 1 {
				if startX == -1 {
					startX = x
				}
				continue
			}
			if startX != -1 && x-startX >= minLength {
				majorEdges = append(majorEdges, EdgeLine{
					From:     Point{X: startX, Y: y},
					To:       Point{X: x - 1, Y: y},
					Strength: runStrength(magnitudes[y], startX, x),
				})
			}
			startX = -1
		}
	}

	for x := 1; x < width-1; x++ {
		startY := -1
		for y := 1; y < height-1; y++ {
			if edgeMap[y][x] == 1 {
				if startY == -1 {
					startY = y
				}
				continue
			}
			if startY != -1 && y-startY >= minLength {
				col := make([]float64, height)
				for i := range col {
					col[i] = magnitudes[i][x]
				}
				majorEdges = append(majorEdges, EdgeLine{
					From:     Point{X: x, Y: startY},
					To:       Point{X: x, Y: y - 1},
					Strength: runStrength(col, startY, y),
				})
			}
			startY = -1
		}
	}

	return majorEdges
}

// runStrength averages magnitudes[from:to) and normalizes it to 0-100.
func runStrength(magnitudes []float64, from, to int) float64 {
	sum := 0.0
	for i := from; i < to; i++ {
		sum += magnitudes[i]
	}
	return (sum / float64(to-from) / 255.0) * 100.0
}

// suggestEdgeTarget is the long-edge size edges are downsampled to before
// SuggestMaxColors computes a density; cheap enough to run unconditionally
// ahead of process_worksheet, consistent in size regardless of the
// original image's resolution.
const suggestEdgeTarget = 96

// suggestMinColors and suggestMaxColors bound the heuristic's output to
// worksheet.Process's own accepted maxColors range.
const (
	suggestMinColors = 2
	suggestMaxColors = 128
)

// SuggestMaxColors estimates a starting palette size for worksheet.Process
// from an image's edge density: a busy image with lots of fine detail
// needs more colors to keep its regions from collapsing together than a
// flat, low-detail one. It is advisory only - process_worksheet treats it
// as a default, and any caller-supplied maxColors overrides it.
func SuggestMaxColors(img image.Image) (int, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("image has zero dimension")
	}

	targetW, targetH := suggestEdgeTarget, suggestEdgeTarget
	if w < h {
		targetW = suggestEdgeTarget * w / h
	} else if h < w {
		targetH = suggestEdgeTarget * h / w
	}
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	edges, err := DetectEdges(img, 40, targetW, targetH)
	if err != nil {
		return 0, fmt.Errorf("suggest max colors: %w", err)
	}

	// Density is typically well under 0.5 even for busy photographs;
	// scale it up so the full palette range is reachable.
	k := suggestMinColors + int(edges.Density*2.5*float64(suggestMaxColors))
	if k < suggestMinColors {
		k = suggestMinColors
	}
	if k > suggestMaxColors {
		k = suggestMaxColors
	}
	return k, nil
}
