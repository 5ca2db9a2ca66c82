// Package testutil provides synthetic RGBA fixtures, used by the
// pkg/worksheet tests, and a helper that builds a valid test Config.
package testutil

// SolidImage returns a width*height*4 RGBA buffer filled with one color.
func SolidImage(width, height int, r, g, b byte) []byte {
	buf := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		o := i * 4
		buf[o], buf[o+1], buf[o+2], buf[o+3] = r, g, b, 255
	}
	return buf
}

// TwoRowImage returns a width*2 RGBA buffer with the top row one color and
// the bottom row another, matching spec.md's 2x2 boundary scenario.
func TwoRowImage(width int, topR, topG, topB, bottomR, bottomG, bottomB byte) []byte {
	buf := make([]byte, width*2*4)
	for x := 0; x < width; x++ {
		top := x * 4
		buf[top], buf[top+1], buf[top+2], buf[top+3] = topR, topG, topB, 255
		bottom := (width + x) * 4
		buf[bottom], buf[bottom+1], buf[bottom+2], buf[bottom+3] = bottomR, bottomG, bottomB, 255
	}
	return buf
}

// RingImage returns a 3x3 RGBA buffer whose center pixel is one color and
// whose 8 surrounding pixels are another, matching spec.md's ring
// boundary scenario.
func RingImage(centerR, centerG, centerB, ringR, ringG, ringB byte) []byte {
	buf := make([]byte, 3*3*4)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			o := (y*3 + x) * 4
			if x == 1 && y == 1 {
				buf[o], buf[o+1], buf[o+2], buf[o+3] = centerR, centerG, centerB, 255
			} else {
				buf[o], buf[o+1], buf[o+2], buf[o+3] = ringR, ringG, ringB, 255
			}
		}
	}
	return buf
}

// GradientImage returns a width*height RGBA buffer with a grayscale
// gradient from black to white along the x axis.
func GradientImage(width, height int) []byte {
	buf := make([]byte, width*height*4)
	denom := width - 1
	if denom < 1 {
		denom = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := byte(x * 255 / denom)
			o := (y*width + x) * 4
			buf[o], buf[o+1], buf[o+2], buf[o+3] = v, v, v, 255
		}
	}
	return buf
}

// CheckerboardImage returns a width*height RGBA buffer alternating between
// two colors on a 1x1 checkerboard pattern.
func CheckerboardImage(width, height int, aR, aG, aB, bR, bG, bB byte) []byte {
	buf := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := (y*width + x) * 4
			if (x+y)%2 == 0 {
				buf[o], buf[o+1], buf[o+2], buf[o+3] = aR, aG, aB, 255
			} else {
				buf[o], buf[o+1], buf[o+2], buf[o+3] = bR, bG, bB, 255
			}
		}
	}
	return buf
}

// SingleHoleImage returns a width*height RGBA buffer filled with color B
// except for one pixel at (holeX,holeY) which is color A, matching
// spec.md's isolated single-pixel hole boundary scenario.
func SingleHoleImage(width, height, holeX, holeY int, aR, aG, aB, bR, bG, bB byte) []byte {
	buf := SolidImage(width, height, bR, bG, bB)
	o := (holeY*width + holeX) * 4
	buf[o], buf[o+1], buf[o+2], buf[o+3] = aR, aG, aB, 255
	return buf
}
