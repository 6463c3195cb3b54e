package render

import (
	"math/rand"
	"testing"
)

func TestGradientCacheResolveCachesByFillID(t *testing.T) {
	c := NewGradientCache(rand.New(rand.NewSource(1)))
	fillID := EncodeGradientFill(0, 255, 0)

	first := c.Resolve(fillID)
	second := c.Resolve(fillID)

	if &first[0] != &second[0] {
		t.Error("Resolve(fillID) twice should return the same backing ramp")
	}
	if c.evictions != 0 {
		t.Errorf("no eviction expected before the cache fills, got %d", c.evictions)
	}
}

func TestGradientCacheBuildRampDecode(t *testing.T) {
	var ramp [256]int
	fillID := EncodeGradientFill(255, 0, 0)
	buildRamp(&ramp, fillID)

	// Full shade (shade=255) lands at index 0; sq=255*255=65025,
	// r*sq/65536 truncates just under the full channel value.
	full := ramp[0]
	if (full >> 16 & 0xFF) == 0 {
		t.Errorf("ramp[0] red channel should be near-maximal for full shade, got %#x", full)
	}
	if ramp[255] != 0 {
		t.Errorf("ramp[255] (shade=0) should be black, got %#x", ramp[255])
	}
}

// TestGradientCacheEvictionAtCapacity exercises Scenario E: 60 distinct
// fill ids driven through a 50-slot cache must trigger at least one
// eviction and never grow the backing arrays.
func TestGradientCacheEvictionAtCapacity(t *testing.T) {
	c := NewGradientCache(rand.New(rand.NewSource(42)))

	for i := 0; i < 60; i++ {
		fillID := -1 - i // color15 == i: 60 distinct negative fill ids
		ramp := c.Resolve(fillID)
		if len(ramp) != 256 {
			t.Fatalf("Resolve(%d) returned ramp of length %d, want 256", fillID, len(ramp))
		}
	}

	if c.count != RampCount {
		t.Errorf("cache count = %d, want %d (capped)", c.count, RampCount)
	}
	if c.Evictions() == 0 {
		t.Error("expected at least one eviction after 60 distinct fill ids through a 50-slot cache")
	}
}
