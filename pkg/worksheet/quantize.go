package worksheet

import "math/rand"

// maxKMeansIterations bounds stage 1's refinement passes (spec §4.1).
const maxKMeansIterations = 10

// kmeansRGB clusters pixels (packed RGB triples) into at most k centroids
// in RGB space. It returns the centroids actually produced (always length
// k; empty clusters keep their initial centroid unmoved) and a per-pixel
// assignment into [0,k).
//
// Initialization samples k pixel indices uniformly at random, with
// replacement tolerated, so two initial centroids may coincide (spec §9);
// stage 2 filters any cluster that ends up with no assigned pixels. Uses
// package-level math/rand (rand.Intn per centroid), so the algorithm is
// nondeterministic; Process takes no seed or RNG, and results are not
// reproducible across runs.
func kmeansRGB(pixels []RGB, k int) ([]RGB, []int) {
	n := len(pixels)
	centroids := make([]RGB, k)
	for i := 0; i < k; i++ {
		centroids[i] = pixels[rand.Intn(n)]
	}

	assignments := make([]int, n)

	for pass := 0; pass < maxKMeansIterations; pass++ {
		moved := assignPixels(pixels, centroids, assignments)
		recomputeCentroids(pixels, assignments, centroids)
		if !moved {
			break
		}
	}

	return centroids, assignments
}

// assignPixels assigns each pixel to its nearest centroid by squared
// Euclidean distance in RGB space, writing into assignments. It returns
// true if any pixel's assignment changed from its previous value.
func assignPixels(pixels []RGB, centroids []RGB, assignments []int) bool {
	changed := false
	for i, p := range pixels {
		best := 0
		bestDist := sqDistRGB(p, centroids[0])
		for c := 1; c < len(centroids); c++ {
			d := sqDistRGB(p, centroids[c])
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		if assignments[i] != best {
			assignments[i] = best
			changed = true
		}
	}
	return changed
}

// recomputeCentroids replaces each centroid with the componentwise integer
// mean (rounded) of its assigned pixels. Empty clusters are left
// unchanged, per spec §4.1 step 2.
func recomputeCentroids(pixels []RGB, assignments []int, centroids []RGB) {
	k := len(centroids)
	var sumR, sumG, sumB = make([]int64, k), make([]int64, k), make([]int64, k)
	counts := make([]int64, k)

	for i, p := range pixels {
		c := assignments[i]
		sumR[c] += int64(p.R)
		sumG[c] += int64(p.G)
		sumB[c] += int64(p.B)
		counts[c]++
	}

	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		centroids[c] = RGB{
			R: roundMean(sumR[c], counts[c]),
			G: roundMean(sumG[c], counts[c]),
			B: roundMean(sumB[c], counts[c]),
		}
	}
}

func roundMean(sum, count int64) uint8 {
	return uint8((sum + count/2) / count)
}

func sqDistRGB(a, b RGB) int64 {
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)
	return dr*dr + dg*dg + db*db
}
