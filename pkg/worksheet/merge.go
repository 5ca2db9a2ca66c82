package worksheet

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// mergeSmallRegions merges regions below minSize into their most
// color-similar active neighbor (spec §4.4). regionMap and the surviving
// regions' pixel lists are updated in place; merged-away regions are
// dropped from the returned slice entirely, renumbering is NOT performed
// here (region IDs are stable from extraction onward; finalize.go and
// emitCounts in process.go work off the returned slice, not off ID
// contiguity).
func mergeSmallRegions(regions []Region, regionMap []int, palette []PaletteColor, width, height, minSize int) []Region {
	active := make(map[int]*Region, len(regions))
	byID := make(map[int]int, len(regions)) // region ID -> index in regions slice
	for i := range regions {
		active[regions[i].ID] = &regions[i]
		byID[regions[i].ID] = i
	}

	order := make([]int, len(regions))
	for i, r := range regions {
		order[i] = r.ID
	}
	sort.Slice(order, func(i, j int) bool {
		return len(active[order[i]].Pixels) < len(active[order[j]].Pixels)
	})

	for _, id := range order {
		candidate, ok := active[id]
		if !ok {
			// already absorbed by an earlier merge in this pass
			continue
		}
		if len(candidate.Pixels) >= minSize {
			continue
		}

		neighborIDs := findNeighborRegions(candidate, regionMap, width, height, active)
		if len(neighborIDs) == 0 {
			// isolated small region with no active neighbor: kept as-is
			continue
		}

		winner := pickMostSimilar(candidate.ColorID, neighborIDs, active, palette)
		absorb(active[winner], candidate, regionMap)
		delete(active, candidate.ID)
	}

	survivors := make([]Region, 0, len(active))
	for _, r := range regions {
		if cur, ok := active[r.ID]; ok {
			survivors = append(survivors, *cur)
		}
	}
	return survivors
}

// findNeighborRegions collects the distinct active region IDs adjacent to
// candidate across a 4-neighbor boundary, excluding candidate's own ID.
func findNeighborRegions(candidate *Region, regionMap []int, width, height int, active map[int]*Region) []int {
	seen := make(map[int]bool)
	var nbs [4]int
	for _, p := range candidate.Pixels {
		x, y := p%width, p/width
		count := neighbors4(x, y, width, height, &nbs)
		for i := 0; i < count; i++ {
			otherID := regionMap[nbs[i]]
			if otherID == candidate.ID || seen[otherID] {
				continue
			}
			if _, ok := active[otherID]; !ok {
				continue
			}
			seen[otherID] = true
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// pickMostSimilar chooses the neighbor whose palette color has the
// smallest squared Euclidean RGB distance to the candidate's palette
// color. Ties are broken by ascending region ID (spec §4.4 permits any
// deterministic tie rule since the algorithm is not required to be stable
// across ties).
func pickMostSimilar(candidateColorID int, neighborIDs []int, active map[int]*Region, palette []PaletteColor) int {
	candidateRGB := palette[candidateColorID].RGB

	best := neighborIDs[0]
	bestDist := sqDistRGB(candidateRGB, palette[active[best].ColorID].RGB)
	for _, id := range neighborIDs[1:] {
		d := sqDistRGB(candidateRGB, palette[active[id].ColorID].RGB)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best
}

// toColorful converts a byte-valued RGB into go-colorful's [0,1]-ranged
// Color. The merge pass itself compares colors with sqDistRGB and does not
// call it.
func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// absorb appends candidate's pixels onto winner and rewrites regionMap for
// every absorbed pixel. The candidate's colorId is discarded; absorbed
// pixels inherit the winner's colorId.
func absorb(winner, candidate *Region, regionMap []int) {
	winner.Pixels = append(winner.Pixels, candidate.Pixels...)
	for _, p := range candidate.Pixels {
		regionMap[p] = winner.ID
	}
}
