// Package navigation moves between the showroom and the podium and carries the
// selected car across through the persisted slot.
package navigation

// Route is a view path.
type Route string

const (
	RouteShowroom Route = "/"
	RoutePodium   Route = "/podium"
)

// Router holds the current route and notifies listeners on change.
type Router struct {
	current   Route
	listeners []func(from, to Route)
}

// NewRouter starts at RouteShowroom.
func NewRouter() *Router {
	return &Router{current: RouteShowroom}
}

func (r *Router) Current() Route { return r.current }

// OnChange registers fn for every route change.
func (r *Router) OnChange(fn func(from, to Route)) {
	r.listeners = append(r.listeners, fn)
}

// Navigate switches to to. Navigating to the current route does nothing.
func (r *Router) Navigate(to Route) {
	if to == r.current {
		return
	}
	from := r.current
	r.current = to
	for _, fn := range r.listeners {
		fn(from, to)
	}
}
