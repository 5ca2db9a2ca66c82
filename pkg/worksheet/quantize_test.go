package worksheet

import "testing"

func TestKmeansRGB_SingleColorConverges(t *testing.T) {
	pixels := make([]RGB, 100)
	for i := range pixels {
		pixels[i] = RGB{R: 200, G: 50, B: 50}
	}

	centroids, assignments := kmeansRGB(pixels, 4)

	if len(centroids) != 4 {
		t.Fatalf("len(centroids) = %d, want 4", len(centroids))
	}
	if len(assignments) != len(pixels) {
		t.Fatalf("len(assignments) = %d, want %d", len(assignments), len(pixels))
	}

	// all pixels must end up on whichever centroid index survives
	used := assignments[0]
	for i, a := range assignments {
		if a != used {
			t.Errorf("pixel %d assigned to cluster %d, want %d (single-color image)", i, a, used)
		}
	}
	got := centroids[used]
	if got.R != 200 || got.G != 50 || got.B != 50 {
		t.Errorf("centroid = %+v, want {200 50 50}", got)
	}
}

func TestKmeansRGB_TwoDistinctClusters(t *testing.T) {
	pixels := make([]RGB, 0, 200)
	for i := 0; i < 100; i++ {
		pixels = append(pixels, RGB{R: 255, G: 0, B: 0})
	}
	for i := 0; i < 100; i++ {
		pixels = append(pixels, RGB{R: 0, G: 255, B: 0})
	}

	centroids, assignments := kmeansRGB(pixels, 2)

	clusterOfFirst := assignments[0]
	clusterOfLast := assignments[len(assignments)-1]
	if clusterOfFirst == clusterOfLast {
		t.Fatalf("red and green pixels ended up in the same cluster")
	}

	red := centroids[clusterOfFirst]
	green := centroids[clusterOfLast]
	if red.R < 200 || green.G < 200 {
		t.Errorf("centroids = %+v / %+v, want red-ish and green-ish", red, green)
	}
}

func TestRecomputeCentroids_EmptyClusterUnchanged(t *testing.T) {
	pixels := []RGB{{R: 10, G: 10, B: 10}}
	assignments := []int{0}
	centroids := []RGB{{R: 10, G: 10, B: 10}, {R: 99, G: 99, B: 99}}

	recomputeCentroids(pixels, assignments, centroids)

	if centroids[1] != (RGB{R: 99, G: 99, B: 99}) {
		t.Errorf("empty cluster centroid changed to %+v, want unchanged", centroids[1])
	}
}

func TestRoundMean(t *testing.T) {
	tests := []struct {
		sum, count int64
		want       uint8
	}{
		{10, 4, 3},  // 2.5 rounds to 3 via (sum+count/2)/count = (10+2)/4 = 3
		{9, 4, 2},   // 2.25 -> (9+2)/4 = 2
		{255, 1, 255},
		{0, 5, 0},
	}
	for _, tt := range tests {
		got := roundMean(tt.sum, tt.count)
		if got != tt.want {
			t.Errorf("roundMean(%d,%d) = %d, want %d", tt.sum, tt.count, got, tt.want)
		}
	}
}

func TestSqDistRGB(t *testing.T) {
	d := sqDistRGB(RGB{R: 0, G: 0, B: 0}, RGB{R: 3, G: 4, B: 0})
	if d != 25 {
		t.Errorf("sqDistRGB = %d, want 25", d)
	}
}
