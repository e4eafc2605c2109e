package crush

import (
	"strings"
	"testing"

	"github.com/vovakirdan/cam-crush/internal/core"
)

// recordingSurface counts draw calls. Blit succeeds for names in sprites.
type recordingSurface struct {
	sprites map[string]bool
	rects   int
	paths   int
	arcs    int
	texts   []string
	blits   []string
}

func (r *recordingSurface) Size() (float64, float64) { return 960, 540 }
func (r *recordingSurface) FillRect(core.Box, core.Color) { r.rects++ }
func (r *recordingSurface) Path([]core.Point, core.Color) { r.paths++ }
func (r *recordingSurface) Arc(core.Point, float64, core.Color) { r.arcs++ }
func (r *recordingSurface) Text(_ core.Point, s string, _ core.Color) { r.texts = append(r.texts, s) }
func (r *recordingSurface) Blit(name string, _ core.Box) bool {
	if r.sprites[name] {
		r.blits = append(r.blits, name)
		return true
	}
	return false
}

func (r *recordingSurface) hasText(sub string) bool {
	for _, s := range r.texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestDrawables(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	if len(s.Drawables()) != 0 {
		t.Error("home should have no field drawables")
	}

	s.StartSeason(2025)
	s.state.Entities = append(s.state.Entities,
		Entity{Category: CategoryOpponent, Kind: KindSign, Bounds: core.NewBox(700, 420, 40, 40)},
		Entity{Category: CategorySpecial, Kind: KindSurge, Bounds: core.NewBox(800, 418, 44, 44), Consumed: true},
	)

	ds := s.Drawables()
	if len(ds) != 2 {
		t.Fatalf("expected sign and character, got %+v", ds)
	}
	if ds[0].Kind != KindSign || ds[0].Label != "PICKS" {
		t.Errorf("first drawable = %+v", ds[0])
	}
	last := ds[len(ds)-1]
	if last.Category != CategoryCharacter || last.Bounds != s.state.Character.Bounds {
		t.Errorf("character drawable = %+v", last)
	}
}

func TestRenderVectorFallback(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.Entities = append(s.state.Entities,
		Entity{Category: CategoryOpponent, Kind: KindCone, Bounds: core.NewBox(700, 420, 40, 40)},
		Entity{Category: CategoryHazard, Kind: KindSpike, Bounds: core.NewBox(500, 446, 90, 16)},
	)

	surf := &recordingSurface{}
	s.Render(surf)

	// Cone + six spike teeth.
	if surf.paths != 7 {
		t.Errorf("paths = %d, expected 7", surf.paths)
	}
	// Two wheels.
	if surf.arcs != 2 {
		t.Errorf("arcs = %d, expected 2", surf.arcs)
	}
	if surf.rects < 5 {
		t.Errorf("rects = %d, expected ground and steamroller body", surf.rects)
	}
	if !surf.hasText("Score 0") || !surf.hasText("Week 1") {
		t.Errorf("HUD missing: %v", surf.texts)
	}
}

func TestRenderPrefersSprites(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.Entities = append(s.state.Entities,
		Entity{Category: CategoryOpponent, Kind: KindCone, Bounds: core.NewBox(700, 420, 40, 40)},
	)

	surf := &recordingSurface{sprites: map[string]bool{"cam": true, "cone": true}}
	s.Render(surf)

	if surf.arcs != 0 || surf.paths != 0 {
		t.Errorf("sprites available but vectors drawn: arcs %d paths %d", surf.arcs, surf.paths)
	}
	if len(surf.blits) != 2 {
		t.Errorf("blits = %v", surf.blits)
	}
}

func TestRenderScenes(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())

	surf := &recordingSurface{}
	s.Render(surf)
	if !surf.hasText("CAM CRUSH") || !surf.hasText("Season 2025") {
		t.Errorf("home texts = %v", surf.texts)
	}

	s.StartSeason(2025)
	s.Tick(input(core.ActionPause), 0)
	surf = &recordingSurface{}
	s.Render(surf)
	if !surf.hasText("Paused") {
		t.Errorf("pause texts = %v", surf.texts)
	}

	finishSeason(t, s)
	surf = &recordingSurface{}
	s.Render(surf)
	if !surf.hasText("Season 2025 is over") || !surf.hasText("Brendan") {
		t.Errorf("graveyard texts = %v", surf.texts)
	}
	if surf.paths != len(Tombstones) {
		t.Errorf("tombstones drawn = %d, expected %d", surf.paths, len(Tombstones))
	}
}

func TestRenderOntoCanvas(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	screen := core.NewScreen(80, 24)
	s.Render(core.NewCanvas(screen, 960, 540, nil))

	out := screen.String()
	if !strings.ContainsRune(out, core.RectFill) || !strings.ContainsRune(out, core.ArcFill) {
		t.Errorf("field not drawn:\n%s", out)
	}
	if !strings.Contains(out, "Score 0") {
		t.Errorf("HUD not drawn:\n%s", out)
	}
}
