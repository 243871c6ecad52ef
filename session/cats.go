package session

import (
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/vmath"
)

// Spring tuning for cat motion, slightly underdamped so cats overshoot a little
const (
	catAngularFrequency = 4.0
	catDamping          = 0.6
	catArriveDistance   = 1.0
)

// cat wanders between random targets inside the viewport
type cat struct {
	id     string
	x, y   float64
	vx, vy float64
	tx, ty float64
}

// Cats returns the render models of all cats
func (c *Controller) Cats() []CatView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CatView, len(c.cats))
	for i, k := range c.cats {
		out[i] = CatView{
			ID:       k.id,
			Position: core.Point{X: int(math.Round(k.x)), Y: int(math.Round(k.y))},
		}
	}
	return out
}

// syncCatsLocked matches the cat count to the window count and arms or stops the frame timer
func (c *Controller) syncCatsLocked() {
	target := CatTarget(len(c.windows), c.cfg.CatThresholds)

	for len(c.cats) < target {
		k := &cat{id: uuid.NewString()}
		k.x, k.y = c.randomCatPointLocked()
		k.tx, k.ty = c.randomCatPointLocked()
		c.cats = append(c.cats, k)
	}
	if len(c.cats) > target {
		clear(c.cats[target:])
		c.cats = c.cats[:target]
	}

	switch {
	case len(c.cats) == 0:
		c.cancelCatsLocked()
	case c.catTimer == nil:
		c.scheduleCatsLocked()
	}
	c.statCats.Store(int64(len(c.cats)))
}

// retargetCatsLocked pulls cats and their targets back inside a changed viewport
func (c *Controller) retargetCatsLocked() {
	maxX, maxY := c.catBoundsLocked()
	for _, k := range c.cats {
		k.x = vmath.ClampFloat(k.x, 0, maxX)
		k.y = vmath.ClampFloat(k.y, 0, maxY)
		k.tx, k.ty = c.randomCatPointLocked()
	}
}

func (c *Controller) scheduleCatsLocked() {
	if c.stopped {
		return
	}
	c.catToken++
	token := c.catToken
	c.catTimer = c.clock.AfterFunc(c.cfg.CatFrame, func() {
		c.catTick(token)
	})
}

func (c *Controller) cancelCatsLocked() {
	c.catToken++
	if c.catTimer != nil {
		c.catTimer.Stop()
		c.catTimer = nil
	}
}

// catTick moves every cat one frame; cats keep wandering while typing is paused
func (c *Controller) catTick(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || token != c.catToken {
		c.statCatStale.Add(1)
		return
	}
	c.catTimer = nil

	maxX, maxY := c.catBoundsLocked()
	var travelled float64
	for _, k := range c.cats {
		px, py := k.x, k.y
		k.x, k.vx = c.catSpring.Update(k.x, k.vx, k.tx)
		k.y, k.vy = c.catSpring.Update(k.y, k.vy, k.ty)

		// Overshoot near an edge is absorbed by the wall
		if k.x < 0 || k.x > maxX {
			k.x, k.vx = vmath.ClampFloat(k.x, 0, maxX), 0
		}
		if k.y < 0 || k.y > maxY {
			k.y, k.vy = vmath.ClampFloat(k.y, 0, maxY), 0
		}
		travelled += math.Hypot(k.x-px, k.y-py)
		if math.Hypot(k.tx-k.x, k.ty-k.y) < catArriveDistance {
			k.tx, k.ty = c.randomCatPointLocked()
		}
	}
	c.statCatDistance.Add(travelled)

	if len(c.cats) > 0 {
		c.scheduleCatsLocked()
	}
}

func (c *Controller) catBoundsLocked() (float64, float64) {
	maxX := max(c.viewport.Width-c.cfg.CatSize.Width, 0)
	maxY := max(c.viewport.Height-c.cfg.CatSize.Height, 0)
	return float64(maxX), float64(maxY)
}

func (c *Controller) randomCatPointLocked() (float64, float64) {
	maxX, maxY := c.catBoundsLocked()
	return vmath.AreaRandomPointF(core.Area{Width: int(maxX) + 1, Height: int(maxY) + 1}, c.rng)
}
