package worksheet

import "testing"

func TestMergeSmallRegions_AbsorbsIntoMostSimilarNeighbor(t *testing.T) {
	// 1x5 row: [similar, similar, tiny, different, different]
	// colorIDs: 0 0 1 2 2, palette colors chosen so color 1 is much
	// closer to color 0 than to color 2.
	width, height := 5, 1
	palette := []PaletteColor{
		{ID: 1, RGB: RGB{R: 100, G: 100, B: 100}},
		{ID: 2, RGB: RGB{R: 105, G: 105, B: 105}}, // near-identical to palette[0]
		{ID: 3, RGB: RGB{R: 255, G: 0, B: 0}},
	}
	regions := []Region{
		{ID: 0, ColorID: 0, Pixels: []int{0, 1}},
		{ID: 1, ColorID: 1, Pixels: []int{2}},
		{ID: 2, ColorID: 2, Pixels: []int{3, 4}},
	}
	regionMap := []int{0, 0, 1, 2, 2}

	survivors := mergeSmallRegions(regions, regionMap, palette, width, height, 2)

	if len(survivors) != 2 {
		t.Fatalf("len(survivors) = %d, want 2 (tiny region absorbed)", len(survivors))
	}
	if regionMap[2] != 0 {
		t.Errorf("regionMap[2] = %d, want 0 (absorbed into the near-identical neighbor)", regionMap[2])
	}

	var winner *Region
	for i := range survivors {
		if survivors[i].ID == 0 {
			winner = &survivors[i]
		}
	}
	if winner == nil {
		t.Fatal("winner region 0 missing from survivors")
	}
	if len(winner.Pixels) != 3 {
		t.Errorf("winner.Pixels = %v, want 3 entries after absorbing", winner.Pixels)
	}
}

func TestMergeSmallRegions_IsolatedRegionKept(t *testing.T) {
	// single region, no neighbors at all - must survive even though tiny.
	palette := []PaletteColor{{ID: 1, RGB: RGB{R: 1, G: 1, B: 1}}}
	regions := []Region{{ID: 0, ColorID: 0, Pixels: []int{0}}}
	regionMap := []int{0}

	survivors := mergeSmallRegions(regions, regionMap, palette, 1, 1, 20)

	if len(survivors) != 1 {
		t.Fatalf("len(survivors) = %d, want 1 (isolated region has no neighbor to merge into)", len(survivors))
	}
}

func TestMergeSmallRegions_AboveThresholdUntouched(t *testing.T) {
	palette := []PaletteColor{
		{ID: 1, RGB: RGB{R: 0, G: 0, B: 0}},
		{ID: 2, RGB: RGB{R: 255, G: 255, B: 255}},
	}
	regions := []Region{
		{ID: 0, ColorID: 0, Pixels: make([]int, 30)},
		{ID: 1, ColorID: 1, Pixels: make([]int, 30)},
	}
	for i := range regions[0].Pixels {
		regions[0].Pixels[i] = i
	}
	for i := range regions[1].Pixels {
		regions[1].Pixels[i] = 30 + i
	}
	regionMap := make([]int, 60)
	for i := 0; i < 30; i++ {
		regionMap[i] = 0
	}
	for i := 30; i < 60; i++ {
		regionMap[i] = 1
	}

	survivors := mergeSmallRegions(regions, regionMap, palette, 60, 1, 20)

	if len(survivors) != 2 {
		t.Errorf("len(survivors) = %d, want 2 (both regions already above threshold)", len(survivors))
	}
}

func TestDynamicMinSize(t *testing.T) {
	tests := []struct {
		pixelCount int
		want       int
	}{
		{100, 20},      // small image, floor dominates
		{40000, 20},    // 40000/40000 = 1, floor still dominates
		{800000, 20},   // 800000/40000 = 20, ties the floor
		{4000000, 100}, // 4000000/40000 = 100, exceeds the floor
	}
	for _, tt := range tests {
		got := dynamicMinSize(tt.pixelCount)
		if got != tt.want {
			t.Errorf("dynamicMinSize(%d) = %d, want %d", tt.pixelCount, got, tt.want)
		}
	}
}
