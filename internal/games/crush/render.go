package crush

import (
	"fmt"
	"math"

	"github.com/vovakirdan/cam-crush/internal/core"
)

// Surface is a 2D drawing target in world units.
type Surface interface {
	Size() (w, h float64)
	FillRect(b core.Box, c core.Color)
	Path(pts []core.Point, c core.Color) // Filled closed polygon
	Arc(center core.Point, r float64, c core.Color)
	Text(p core.Point, s string, c core.Color) // Centered on p
	Blit(name string, b core.Box) bool         // False when the sprite is unavailable
}

var _ Surface = (*core.Canvas)(nil)

// Drawable describes one thing on the field.
type Drawable struct {
	Category Category
	Kind     Kind
	Bounds   core.Box
	Label    string
}

var labels = map[Kind]string{
	KindSign:    "PICKS",
	KindSetback: "BJGE",
	KindSurge:   "OBJ",
}

// Tombstones shown in the graveyard.
var Tombstones = []string{"Austin", "Dom", "Matt", "Brady", "Nealy", "James", "Jaymes", "Johnny", "Chase", "Brendan", "Walker"}

// Drawables returns the field contents, back to front, character last.
// It is empty outside run and pause.
func (s *Session) Drawables() []Drawable {
	st := &s.state
	if st.Scene != SceneRun && st.Scene != ScenePause {
		return nil
	}
	out := make([]Drawable, 0, len(st.Entities)+1)
	for _, e := range st.Entities {
		if e.Consumed {
			continue
		}
		out = append(out, Drawable{Category: e.Category, Kind: e.Kind, Bounds: e.Bounds, Label: labels[e.Kind]})
	}
	return append(out, Drawable{Category: CategoryCharacter, Kind: KindCam, Bounds: st.Character.Bounds, Label: "CAM"})
}

// Render draws the current scene onto dst.
func (s *Session) Render(dst Surface) {
	w, h := dst.Size()
	switch s.state.Scene {
	case SceneHome:
		s.renderHome(dst, w, h)
	case SceneGraveyard, SceneNameEntry:
		s.renderGraveyard(dst, w, h)
	default:
		s.renderField(dst, w, h)
	}
	if text, ok := s.Toast(); ok {
		dst.Text(core.Point{X: w / 2, Y: h * 0.3}, text, core.ColorBrightYellow)
	}
}

func (s *Session) renderField(dst Surface, w, h float64) {
	ground := s.cfg.World.GroundY()
	dst.FillRect(core.NewBox(0, ground, w, h-ground), core.ColorDarkGray)
	dst.FillRect(core.NewBox(0, ground, w, 1), core.ColorSlate)

	for _, d := range s.Drawables() {
		if d.Category == CategoryCharacter {
			s.drawCharacter(dst, d.Bounds)
			continue
		}
		if dst.Blit(string(d.Kind), d.Bounds) {
			continue
		}
		drawEntity(dst, d)
	}
	s.drawHUD(dst, w)

	if s.state.Scene == ScenePause {
		dst.Text(core.Point{X: w / 2, Y: h / 2}, "Paused", core.ColorWhite)
		dst.Text(core.Point{X: w / 2, Y: h/2 + 40}, "P to resume, Q to quit", core.ColorGray)
	}
}

func (s *Session) drawHUD(dst Surface, w float64) {
	st := &s.state
	hud := fmt.Sprintf("%d  %s  Score %d  Best %d", st.Year, s.Week().Name, st.Points(), st.Best)
	dst.Text(core.Point{X: w / 2, Y: 12}, hud, core.ColorWhite)

	var fx string
	if st.Effects.Slowed() {
		fx += fmt.Sprintf(" SLOW %.0f%% ", st.Effects.SlowFactor*100)
	}
	if st.Effects.Boosted() {
		fx += fmt.Sprintf(" BOOST %.0f%% ", st.Effects.BoostFactor*100)
	}
	if st.Effects.JumpLocked() {
		fx += " NO JUMP "
	}
	if st.Run.Streak >= s.cfg.Scoring.StreakThreshold {
		fx += fmt.Sprintf(" STREAK x%d ", st.Run.Streak)
	}
	if fx != "" {
		dst.Text(core.Point{X: w / 2, Y: 40}, fx, core.ColorOrange)
	}
}

// drawCharacter blits the "cam" sprite or falls back to a vector steamroller
// facing right.
func (s *Session) drawCharacter(dst Surface, b core.Box) {
	b.Y += math.Sin(s.state.Run.Elapsed*3) * 1.5
	if dst.Blit(string(KindCam), b) {
		return
	}
	x, y, w, h := b.X, b.Y, b.W, b.H
	dst.FillRect(core.NewBox(x+22, y+12, w-44, h-24), core.ColorWhite)
	dst.FillRect(core.NewBox(x+8, y+24, w-16, 18), core.ColorSlate)
	dst.FillRect(core.NewBox(x-12, y+26, 30, 30), core.ColorBrightBlue)
	dst.Arc(core.Point{X: x + w - 26, Y: y + h - 10}, 18, core.ColorGray)
	dst.Arc(core.Point{X: x + 8, Y: y + 40}, 18, core.ColorGray)
}

func drawEntity(dst Surface, d Drawable) {
	b := d.Bounds
	switch d.Kind {
	case KindCone:
		dst.Path(triangle(b.X, b.Bottom(), b.W, b.H), core.ColorYellow)
	case KindSign:
		dst.FillRect(b, core.ColorBlue)
	case KindPapers:
		dst.FillRect(b, core.ColorGray)
	case KindSpike:
		const teeth = 6
		tw := b.W / teeth
		for i := range teeth {
			dst.Path(triangle(b.X+float64(i)*tw, b.Bottom(), tw, b.H), core.ColorRed)
		}
	case KindHole:
		dst.Arc(core.Point{X: b.X + b.W/2, Y: b.Y + 4}, b.W/2, core.ColorDefault)
	case KindSetback:
		dst.FillRect(b, core.ColorOrange)
	case KindSurge:
		dst.FillRect(b, core.ColorPurple)
	}
	if d.Label != "" {
		dst.Text(b.Center(), d.Label, core.ColorBrightYellow)
	}
}

// triangle returns an upward triangle standing on baseY.
func triangle(x, baseY, w, h float64) []core.Point {
	return []core.Point{
		{X: x, Y: baseY},
		{X: x + w/2, Y: baseY - h},
		{X: x + w, Y: baseY},
	}
}

func (s *Session) renderHome(dst Surface, w, h float64) {
	st := &s.state
	dst.Text(core.Point{X: w / 2, Y: h * 0.2}, "CAM CRUSH", core.ColorBrightYellow)
	dst.Text(core.Point{X: w / 2, Y: h*0.2 + 40}, fmt.Sprintf("Season %d", st.SelectedYear), core.ColorWhite)
	dst.Text(core.Point{X: w / 2, Y: h*0.2 + 80}, fmt.Sprintf("Best %d", st.Best), core.ColorGray)

	ground := s.cfg.World.GroundY()
	dst.FillRect(core.NewBox(0, ground, w, h-ground), core.ColorDarkGray)
	s.drawCharacter(dst, core.NewBox(s.cfg.Player.X, ground-s.cfg.Player.Height, s.cfg.Player.Width, s.cfg.Player.Height))
}

func (s *Session) renderGraveyard(dst Surface, w, h float64) {
	st := &s.state
	dst.FillRect(core.NewBox(0, h-70, w, 70), core.ColorDarkGray)

	gap := w / float64(len(Tombstones)+1)
	base := h - 80
	for i, name := range Tombstones {
		cx := gap * float64(i+1)
		dst.Path([]core.Point{
			{X: cx - 24, Y: base},
			{X: cx + 24, Y: base},
			{X: cx + 24, Y: base - 40},
			{X: cx, Y: base - 60},
			{X: cx - 24, Y: base - 40},
		}, core.ColorGray)
		// Alternate rows so neighbouring names don't overlap on narrow surfaces.
		dst.Text(core.Point{X: cx, Y: base + 20 + float64(i%2)*25}, name, core.ColorWhite)
	}

	dst.Text(core.Point{X: w / 2, Y: h * 0.15}, fmt.Sprintf("Season %d is over", st.Year), core.ColorBrightYellow)
	dst.Text(core.Point{X: w / 2, Y: h*0.15 + 40}, fmt.Sprintf("Final score %d", st.FinalScore), core.ColorWhite)
	if st.Scene == SceneGraveyard {
		dst.Text(core.Point{X: w / 2, Y: h*0.15 + 80}, "Enter to continue", core.ColorGray)
	}
}
