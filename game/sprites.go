package game

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/events"
	"github.com/pthm-cable/deadroad/registry"
	"github.com/pthm-cable/deadroad/sprite"
)

// Marshaler builds a sprite from a descriptor string.
type Marshaler interface {
	Marshal(desc string) (sprite.Entity, error)
}

// Layered is implemented by sprites with a draw order. Higher Z draws later.
type Layered interface {
	Z() int
}

// Kinded is implemented by sprites that know their catalog kind.
type Kinded interface {
	Kind() string
}

// AddSprite registers e with the game and returns its ID.
func (g *Game) AddSprite(e sprite.Entity) sprite.ID {
	g.collector.RecordSpawn()
	return g.reg.Add(e)
}

// NewDude replaces the player. The previous dude is marked dead and leaves
// at the end of the next running tick.
func (g *Game) NewDude(p Player) {
	if g.dude != nil {
		g.dude.Base().Die()
	}
	g.dude = p
	g.AddSprite(p)
	g.bus.Fire(events.NewDude, p)
}

// AddSpritesFromStrings marshals every descriptor, moves the sprite by
// offset and adds it. WaitingSpritesLoaded fires once the batch is done.
// Descriptors that fail to marshal are skipped and reported in the error.
func (g *Game) AddSpritesFromStrings(descs []string, offset r2.Vec, m Marshaler) error {
	if len(descs) == 0 {
		return nil
	}
	g.waiting += len(descs)

	var errs []error
	for _, desc := range descs {
		e, err := m.Marshal(desc)
		if err != nil {
			errs = append(errs, fmt.Errorf("sprite %q: %w", desc, err))
		} else {
			b := e.Base()
			b.Pos = r2.Add(b.Pos, offset)
			g.AddSprite(e)
		}

		g.waiting--
		if g.waiting == 0 {
			g.bus.Fire(events.WaitingSpritesLoaded, nil)
		}
	}
	return errors.Join(errs...)
}

// WaitingSpriteCount returns the number of sprites still being loaded.
func (g *Game) WaitingSpriteCount() int { return g.waiting }

// RegisterObject adds a non-sprite object that ticks after the sprites.
func (g *Game) RegisterObject(t registry.Ticker) {
	g.objects.Register(t)
}

// RenderMap draws the world underneath the sprites.
func (g *Game) RenderMap(dt float64) {
	if g.world != nil {
		g.world.Render(dt)
	}
}

// RenderSprites draws every visible sprite in Z order. Sprites on the same
// layer keep registry order.
func (g *Game) RenderSprites(c sprite.Canvas, dt float64) {
	g.drawList = g.drawList[:0]
	g.reg.Each(func(e sprite.Entity) {
		if e.Base().Visible {
			g.drawList = append(g.drawList, e)
		}
	})
	sort.SliceStable(g.drawList, func(i, j int) bool {
		return layer(g.drawList[i]) < layer(g.drawList[j])
	})
	for _, e := range g.drawList {
		sprite.Render(e, c, dt)
	}
}

func layer(e sprite.Entity) int {
	if l, ok := e.(Layered); ok {
		return l.Z()
	}
	return 0
}

func kindOf(e sprite.Entity) string {
	if k, ok := e.(Kinded); ok {
		return k.Kind()
	}
	return ""
}
