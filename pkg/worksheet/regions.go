package worksheet

// extractRegions labels the remapped assignment array into 4-connected
// regions via iterative flood fill (spec §4.3). Recursion is forbidden: a
// uniform region the size of the whole image would blow the call stack,
// so this uses an explicit stack sized width*height.
//
// Returns the region list (pixel lists only populated so far; centroid and
// borders are filled in by finalize.go) and the dense regionMap.
func extractRegions(colorID []int, width, height int) ([]Region, []int) {
	n := width * height
	regionMap := make([]int, n)
	for i := range regionMap {
		regionMap[i] = -1
	}

	visited := make([]bool, n)
	stack := make([]int, 0, n)

	var regions []Region
	nextID := 0

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		color := colorID[start]
		stack = stack[:0]
		stack = append(stack, start)
		visited[start] = true

		pixels := make([]int, 0, 16)

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			pixels = append(pixels, p)
			regionMap[p] = nextID

			x, y := p%width, p/width
			var nbs [4]int
			count := neighbors4(x, y, width, height, &nbs)
			for i := 0; i < count; i++ {
				nb := nbs[i]
				if !visited[nb] && colorID[nb] == color {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}

		regions = append(regions, Region{
			ID:      nextID,
			ColorID: color,
			Pixels:  pixels,
		})
		nextID++
	}

	return regions, regionMap
}

// neighbors4 writes the flat pixel indices of the in-bounds 4-neighbors
// (up/down/left/right) of (x,y) into out and returns how many were
// written. Diagonal neighbors are never included: they belong to a
// different region even when same-colored (spec §4.3). Takes a caller-
// owned array so the hot flood-fill loop makes no per-pixel allocation.
func neighbors4(x, y, width, height int, out *[4]int) int {
	n := 0
	if x > 0 {
		out[n] = y*width + (x - 1)
		n++
	}
	if x < width-1 {
		out[n] = y*width + (x + 1)
		n++
	}
	if y > 0 {
		out[n] = (y-1)*width + x
		n++
	}
	if y < height-1 {
		out[n] = (y+1)*width + x
		n++
	}
	return n
}
