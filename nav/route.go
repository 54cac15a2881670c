package nav

import "gonum.org/v1/gonum/spatial/r2"

// Route is a cached path towards a moving target.
type Route struct {
	Waypoints []r2.Vec
	Index     int     // current waypoint
	Target    r2.Vec  // target position when the path was planned
	Age       float64 // seconds since planning
}

// replanDistance is how far the target may move before a route goes stale.
const replanDistance = 32.0

// Valid reports whether the route still leads to target. Routes expire
// after maxAge seconds, when the target has moved, or when a remaining
// waypoint has been blocked since planning.
func (r *Route) Valid(g *Grid, target r2.Vec, maxAge float64) bool {
	if r == nil || r.Index >= len(r.Waypoints) {
		return false
	}
	if r.Age > maxAge {
		return false
	}
	if r2.Norm2(r2.Sub(target, r.Target)) > replanDistance*replanDistance {
		return false
	}
	for _, wp := range r.Waypoints[r.Index:] {
		if g.IsBlockedWorld(wp) {
			return false
		}
	}
	return true
}

// Next returns the waypoint to head for from pos, advancing past waypoints
// within arrival. ok is false once the route is used up.
func (r *Route) Next(pos r2.Vec, arrival float64) (wp r2.Vec, ok bool) {
	for r.Index < len(r.Waypoints) {
		wp = r.Waypoints[r.Index]
		if r2.Norm2(r2.Sub(wp, pos)) >= arrival*arrival {
			return wp, true
		}
		r.Index++
	}
	return pos, false
}

// Plan returns a fresh route from pos to target, or nil if planner finds
// none.
func (a *Planner) Plan(pos, target r2.Vec) *Route {
	path := a.FindPath(pos, target)
	if path == nil {
		return nil
	}
	return &Route{Waypoints: path, Target: target}
}
