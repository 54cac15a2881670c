package registry

// Ticker is a non-colliding object updated once per frame.
type Ticker interface {
	Tick(dt float64)
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func(dt float64)

// Tick calls f(dt).
func (f TickerFunc) Tick(dt float64) { f(dt) }

// Objects holds tick-only objects in registration order.
type Objects struct {
	list []Ticker
}

// NewObjects creates an empty object list.
func NewObjects() *Objects {
	return &Objects{}
}

// Register appends an object.
func (o *Objects) Register(t Ticker) {
	o.list = append(o.list, t)
}

// Tick updates every registered object. Objects registered during the call
// are first ticked on the next call.
func (o *Objects) Tick(dt float64) {
	n := len(o.list)
	for i := 0; i < n; i++ {
		o.list[i].Tick(dt)
	}
}

// Len returns the number of registered objects.
func (o *Objects) Len() int {
	return len(o.list)
}
