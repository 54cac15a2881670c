package actors

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/fx"
	"github.com/pthm-cable/deadroad/sprite"
)

// Factory builds actors from descriptor strings of the form "Kind x y [rot]".
type Factory struct {
	Env *Env

	// Driver, if set, is called once per car to give it a driver.
	Driver func() Input
}

// NewDude creates the player at pos.
func (f *Factory) NewDude(pos r2.Vec, input Input) (*Dude, error) {
	info, ok := f.Env.Catalog.Lookup(KindDude)
	if !ok {
		return nil, fmt.Errorf("catalog has no %s", KindDude)
	}
	return NewDude(f.Env, info, pos, input), nil
}

// Marshal parses desc and builds the sprite it describes.
func (f *Factory) Marshal(desc string) (sprite.Entity, error) {
	fields := strings.Fields(desc)
	if len(fields) < 3 || len(fields) > 4 {
		return nil, fmt.Errorf("want \"Kind x y [rot]\", got %d fields", len(fields))
	}

	var nums [3]float64
	for i, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing field %d: %w", i+2, err)
		}
		nums[i] = v
	}
	pos, rot := r2.Vec{X: nums[0], Y: nums[1]}, nums[2]

	kind := fields[0]
	info, ok := f.Env.Catalog.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %s", kind)
	}

	switch kind {
	case KindZombie:
		return NewZombie(f.Env, info, pos, rot), nil
	case KindHonda, KindPoliceCar:
		car := NewCar(f.Env, info, pos, rot)
		if f.Driver != nil {
			car.Drive(f.Driver())
		}
		return car, nil
	case KindBarrel, "GasPump1", "GasPump2", "Tree1", "Tree2", "Tree3":
		return NewProp(f.Env, info, pos, rot), nil
	case fx.KindExplosion:
		return fx.NewExplosion(pos, f.Env.Rand), nil
	case KindDude:
		return nil, fmt.Errorf("%s is created with NewDude", kind)
	default:
		return nil, fmt.Errorf("kind %s cannot be placed", kind)
	}
}
