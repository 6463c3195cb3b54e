package render

import "math/rand"

// unusedGradientSlot is the sentinel gradientBase value for a ring slot
// that has never held a ramp; 1 is safe because valid fill ids handed to
// the cache are always negative (§4.6, Glossary "Fill id").
const unusedGradientSlot = 1

// GradientCache is the 50-slot ring of 256-entry RGB ramps keyed by a
// negative fill id (§4.6). Ramps are lazily built on first sighting of a
// fill id; once full, a miss evicts a random slot.
type GradientCache struct {
	base      [RampCount]int
	ramps     [RampCount][256]int
	count     int
	evictions int
	rng       *rand.Rand
}

// NewGradientCache builds an empty cache. rng defaults to a fresh
// deterministic source if nil; pass one explicitly (via
// WithGradientRand) to make eviction reproducible across renders.
func NewGradientCache(rng *rand.Rand) *GradientCache {
	c := &GradientCache{rng: rng}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(1))
	}
	for i := range c.base {
		c.base[i] = unusedGradientSlot
	}
	return c
}

// Resolve returns the ramp for fillId (a negative fill id, §4.6),
// building and caching it on first sighting.
func (c *GradientCache) Resolve(fillID int) []int {
	for i := 0; i < c.count; i++ {
		if c.base[i] == fillID {
			return c.ramps[i][:]
		}
	}

	var slot int
	if c.count < RampCount {
		slot = c.count
		c.count++
	} else {
		// Cache full: evict a random slot (§4.6, §9 "gradient cache
		// eviction is random").
		slot = c.rng.Intn(RampCount)
		c.evictions++
		Logger().Debug("gradient cache evicted slot", "slot", slot, "fillId", fillID)
	}

	c.base[slot] = fillID
	buildRamp(&c.ramps[slot], fillID)
	return c.ramps[slot][:]
}

// Evictions returns the running count of random-slot evictions since
// construction, exposed for SceneRenderer.Stats (§6 SUPPLEMENTED FEATURES).
func (c *GradientCache) Evictions() int { return c.evictions }

// buildRamp decodes fillId's 15-bit RGB base and fills all 256 shade
// entries per the formula in §4.6.
func buildRamp(ramp *[256]int, fillID int) {
	color15 := -1 - fillID
	r, g, b := decode15(color15)
	for shade := 0; shade <= 255; shade++ {
		sq := shade * shade
		ramp[255-shade] = ((r * sq / 65536) << 16) | ((g * sq / 65536) << 8) | (b * sq / 65536)
	}
}
