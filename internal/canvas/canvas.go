// Package canvas implements an in-memory drawing host: a layered pixel
// framebuffer with a key queue, a tick clock, and a random source.
package canvas

import (
	"math"
	"math/rand"
	"time"
)

// Default screen geometry and colors.
const (
	DefaultWidth      = 320
	DefaultHeight     = 240
	DefaultBackground = 0xffffff
)

type point struct{ x, y int }

// Canvas is a host whose drawing lands in memory, where it may be read back
// with GetPixel. The zero value is ready to use, with default geometry.
type Canvas struct {
	Width, Height int

	// Now and SleepFunc default to the time package; tests replace them.
	Now       func() time.Time
	SleepFunc func(time.Duration)

	// Rand defaults to a source seeded from the clock.
	Rand *rand.Rand

	layers map[int]map[point]int
	bg     int
	start  time.Time
	keys   []int
	last   int
	frames int
}

func (c *Canvas) init() {
	if c.layers != nil {
		return
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.SleepFunc == nil {
		c.SleepFunc = time.Sleep
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(c.Now().UnixNano()))
	}
	c.bg = DefaultBackground
	c.layers = make(map[int]map[point]int)
	c.start = c.Now()
	c.last = -1
}

func (c *Canvas) plot(layer, x, y, color int) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	l := c.layers[layer]
	if l == nil {
		l = make(map[point]int)
		c.layers[layer] = l
	}
	l[point{x, y}] = color
}

// Pixel sets a single pixel; points off screen are clipped.
func (c *Canvas) Pixel(layer, x, y, color int) {
	c.init()
	c.plot(layer, x, y, color)
}

// Line draws a line between two points using Bresenham's algorithm. A line
// reaching off screen is first clipped to the screen.
func (c *Canvas) Line(layer, x1, y1, x2, y2, color int) {
	c.init()
	if !c.onScreen(x1, y1) || !c.onScreen(x2, y2) {
		var ok bool
		if x1, y1, x2, y2, ok = c.clipLine(x1, y1, x2, y2); !ok {
			return
		}
	}
	dx, sx := abs(x2-x1), sign(x2-x1)
	dy, sy := -abs(y2-y1), sign(y2-y1)
	err := dx + dy
	for {
		c.plot(layer, x1, y1, color)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// Rect outlines a w by h rectangle whose top left corner is x, y.
func (c *Canvas) Rect(layer, x, y, w, h, color int) {
	c.init()
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := c.clipSpan(x, w, c.Width)
	y0, y1 := c.clipSpan(y, h, c.Height)
	for i := x0; i < x1; i++ {
		c.plot(layer, i, y, color)
		c.plot(layer, i, y+h-1, color)
	}
	for j := y0; j < y1; j++ {
		c.plot(layer, x, j, color)
		c.plot(layer, x+w-1, j, color)
	}
}

// FillRect fills a w by h rectangle, then outlines it with the edge color.
func (c *Canvas) FillRect(layer, x, y, w, h, edge, fill int) {
	c.init()
	x0, x1 := c.clipSpan(x, w, c.Width)
	y0, y1 := c.clipSpan(y, h, c.Height)
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			c.plot(layer, i, j, fill)
		}
	}
	if edge != fill {
		c.Rect(layer, x, y, w, h, edge)
	}
}

// Circle outlines a circle using the midpoint algorithm. A circle larger
// than the screen is instead traced across the screen's rows and columns.
func (c *Canvas) Circle(layer, cx, cy, r, color int) {
	c.init()
	if r < 0 {
		return
	}
	if cx+r < 0 || cy+r < 0 || cx-r >= c.Width || cy-r >= c.Height {
		return
	}
	if r > c.Width+c.Height {
		c.traceCircle(layer, cx, cy, r, color)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [...]point{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.plot(layer, cx+p.x, cy+p.y, color)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// traceCircle plots, for every screen column and row, the points where a
// circle crosses it.
func (c *Canvas) traceCircle(layer, cx, cy, r, color int) {
	rr := float64(r) * float64(r)
	offset := func(d int) (int, bool) {
		dd := float64(d) * float64(d)
		if dd > rr {
			return 0, false
		}
		return int(math.Round(math.Sqrt(rr - dd))), true
	}
	for x := 0; x < c.Width; x++ {
		if dy, ok := offset(x - cx); ok {
			c.plot(layer, x, cy+dy, color)
			c.plot(layer, x, cy-dy, color)
		}
	}
	for y := 0; y < c.Height; y++ {
		if dx, ok := offset(y - cy); ok {
			c.plot(layer, cx+dx, y, color)
			c.plot(layer, cx-dx, y, color)
		}
	}
}

func (c *Canvas) onScreen(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// clipSpan returns the part of [at, at+n) that lies within [0, limit).
func (c *Canvas) clipSpan(at, n, limit int) (lo, hi int) {
	lo, hi = at, at+n
	if n > limit-at {
		hi = limit
	}
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// clipLine clips a line to the screen, using the Liang-Barsky algorithm. It
// returns false if no part of the line is on screen.
func (c *Canvas) clipLine(x1, y1, x2, y2 int) (int, int, int, int, bool) {
	fx, fy := float64(x1), float64(y1)
	dx, dy := float64(x2)-fx, float64(y2)-fy
	t0, t1 := 0.0, 1.0
	for _, edge := range [...][2]float64{
		{-dx, fx},
		{dx, float64(c.Width-1) - fx},
		{-dy, fy},
		{dy, float64(c.Height-1) - fy},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	at := func(t float64) (int, int) {
		x := clamp(int(math.Round(fx+t*dx)), 0, c.Width-1)
		y := clamp(int(math.Round(fy+t*dy)), 0, c.Height-1)
		return x, y
	}
	x1, y1 = at(t0)
	x2, y2 = at(t1)
	return x1, y1, x2, y2, true
}

// GetPixel reads the color of a pixel on layer 0; undrawn pixels have the
// background color, and off screen points read as -1.
func (c *Canvas) GetPixel(x, y int) int {
	c.init()
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return -1
	}
	if color, ok := c.layers[0][point{x, y}]; ok {
		return color
	}
	return c.bg
}

// Clear wipes all layers and sets the background color.
func (c *Canvas) Clear(background int) {
	c.init()
	c.bg = background
	for layer := range c.layers {
		delete(c.layers, layer)
	}
}

// Show presents the current frame; an in-memory canvas only counts them.
func (c *Canvas) Show() error {
	c.init()
	c.frames++
	return nil
}

// Frames returns how many times Show has been called.
func (c *Canvas) Frames() int { return c.frames }

// Press queues key codes to be returned by PollKey.
func (c *Canvas) Press(keys ...int) {
	c.init()
	c.keys = append(c.keys, keys...)
}

// PollKey consumes the next pressed key, returning -1 if none is pending.
func (c *Canvas) PollKey() int {
	c.init()
	if len(c.keys) == 0 {
		return -1
	}
	c.last, c.keys = c.keys[0], c.keys[1:]
	return c.last
}

// LastKey returns the most recently polled key, or -1 before any.
func (c *Canvas) LastKey() int {
	c.init()
	return c.last
}

// Ticks returns the milliseconds elapsed since the canvas was first used.
func (c *Canvas) Ticks() int {
	c.init()
	return int(c.Now().Sub(c.start) / time.Millisecond)
}

// Sleep blocks for d.
func (c *Canvas) Sleep(d time.Duration) {
	c.init()
	if d > 0 {
		c.SleepFunc(d)
	}
}

// Random returns a number in [0, bound), or 0 for a non-positive bound.
func (c *Canvas) Random(bound int) int {
	c.init()
	if bound <= 0 {
		return 0
	}
	return c.Rand.Intn(bound)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
