package core

import "math"

// Fill runes used by the canvas primitives.
const (
	RectFill = '█'
	PathFill = '▓'
	ArcFill  = '●'
)

// Canvas maps a fixed world coordinate space onto a Screen.
// It provides the primitive draw operations (filled rect, filled path,
// filled arc, text, sprite blit) in world units.
type Canvas struct {
	screen  *Screen
	worldW  float64
	worldH  float64
	sprites map[string][]string
}

// NewCanvas creates a canvas drawing a worldW x worldH field onto dst.
// sprites may be nil; Blit then always reports the sprite as unavailable.
func NewCanvas(dst *Screen, worldW, worldH float64, sprites map[string][]string) *Canvas {
	return &Canvas{
		screen:  dst,
		worldW:  worldW,
		worldH:  worldH,
		sprites: sprites,
	}
}

// Size returns the world dimensions.
func (c *Canvas) Size() (float64, float64) {
	return c.worldW, c.worldH
}

func (c *Canvas) scale() (float64, float64) {
	if c.worldW <= 0 || c.worldH <= 0 {
		return 0, 0
	}
	return float64(c.screen.Width()) / c.worldW, float64(c.screen.Height()) / c.worldH
}

// cellSpan converts a world box into a cell range [x0,x1) x [y0,y1).
// Non-empty boxes always cover at least one cell.
func (c *Canvas) cellSpan(b Box) (x0, y0, x1, y1 int) {
	sx, sy := c.scale()
	x0 = int(math.Floor(b.X * sx))
	y0 = int(math.Floor(b.Y * sy))
	x1 = int(math.Ceil(b.Right() * sx))
	y1 = int(math.Ceil(b.Bottom() * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// cellCenter returns the world position of a cell's center.
func (c *Canvas) cellCenter(x, y int) Point {
	sx, sy := c.scale()
	return Point{X: (float64(x) + 0.5) / sx, Y: (float64(y) + 0.5) / sy}
}

// FillRect fills a world-space box.
func (c *Canvas) FillRect(b Box, col Color) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	x0, y0, x1, y1 := c.cellSpan(b)
	c.screen.DrawRect(NewRect(x0, y0, x1-x0, y1-y0), RectFill, col)
}

// Path fills the closed polygon described by pts.
func (c *Canvas) Path(pts []Point, col Color) {
	if len(pts) < 3 {
		return
	}
	bounds := polygonBounds(pts)
	x0, y0, x1, y1 := c.cellSpan(bounds)
	painted := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if pointInPolygon(c.cellCenter(x, y), pts) {
				c.screen.SetColored(x, y, PathFill, col)
				painted = true
			}
		}
	}
	if !painted {
		// Sub-cell polygon: mark the cell under its centroid.
		sx, sy := c.scale()
		ctr := bounds.Center()
		c.screen.SetColored(int(ctr.X*sx), int(ctr.Y*sy), PathFill, col)
	}
}

// Arc fills a circle of radius r around center.
func (c *Canvas) Arc(center Point, r float64, col Color) {
	if r <= 0 {
		return
	}
	x0, y0, x1, y1 := c.cellSpan(NewBox(center.X-r, center.Y-r, 2*r, 2*r))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := c.cellCenter(x, y)
			if math.Hypot(p.X-center.X, p.Y-center.Y) <= r {
				c.screen.SetColored(x, y, ArcFill, col)
			}
		}
	}
}

// Text draws s centered horizontally on the world point p.
func (c *Canvas) Text(p Point, s string, col Color) {
	sx, sy := c.scale()
	n := len([]rune(s))
	x := int(p.X*sx) - n/2
	c.screen.DrawText(x, int(p.Y*sy), s, col)
}

// Blit draws the named sprite into b, clipped to the box.
// Returns false if the sprite is not loaded.
func (c *Canvas) Blit(name string, b Box) bool {
	lines, ok := c.sprites[name]
	if !ok || len(lines) == 0 {
		return false
	}
	x0, y0, x1, y1 := c.cellSpan(b)
	for dy, line := range lines {
		y := y0 + dy
		if y >= y1 {
			break
		}
		dx := 0
		for _, r := range line {
			x := x0 + dx
			if x >= x1 {
				break
			}
			if r != ' ' {
				c.screen.SetColored(x, y, r, ColorWhite)
			}
			dx++
		}
	}
	return true
}

func polygonBounds(pts []Point) Box {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return NewBox(minX, minY, maxX-minX, maxY-minY)
}

// pointInPolygon uses the even-odd rule.
func pointInPolygon(p Point, pts []Point) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}
