package worksheet

import (
	"fmt"
	"sort"
)

// compactPalette drops centroids that no pixel was assigned to, assigns
// stable 1-based IDs in ascending order of the original cluster index, and
// remaps assignments to the compacted 0-based index (spec §4.2).
func compactPalette(centroids []RGB, assignments []int) ([]PaletteColor, []int) {
	used := make(map[int]bool)
	for _, a := range assignments {
		used[a] = true
	}

	usedIdx := make([]int, 0, len(used))
	for idx := range used {
		usedIdx = append(usedIdx, idx)
	}
	sort.Ints(usedIdx)

	remap := make(map[int]int, len(usedIdx))
	palette := make([]PaletteColor, 0, len(usedIdx))
	for pos, idx := range usedIdx {
		remap[idx] = pos
		rgb := centroids[idx]
		palette = append(palette, PaletteColor{
			ID:        pos + 1,
			RGB:       rgb,
			Hex:       hexString(rgb),
			TextColor: textColorFor(rgb),
			Count:     0,
		})
	}

	remapped := make([]int, len(assignments))
	for i, a := range assignments {
		remapped[i] = remap[a]
	}

	return palette, remapped
}

// hexString formats rgb as a lowercase "#rrggbb" string.
func hexString(rgb RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// textColorFor chooses "black" or "white" by YIQ luminance:
// (299r+587g+114b)/1000 >= 128 -> black, else white.
func textColorFor(rgb RGB) string {
	yiq := (299*int(rgb.R) + 587*int(rgb.G) + 114*int(rgb.B)) / 1000
	if yiq >= 128 {
		return "black"
	}
	return "white"
}
