package route

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/d9705996/hubclient/internal/observe"
)

// Link describes an activated anchor: its raw href attribute and target.
type Link struct {
	Href   string
	Target string
}

// Navigator owns the navigation history and publishes the current Route.
// History entries are only ever appended.
type Navigator struct {
	mu      sync.Mutex
	entries []string
	index   int
	current *observe.Cell[Route]
	log     *slog.Logger
}

// NewNavigator starts a history at location and publishes its Route.
func NewNavigator(location string, log *slog.Logger) *Navigator {
	if log == nil {
		log = slog.Default()
	}
	if location == "" {
		location = "/"
	}
	return &Navigator{
		entries: []string{location},
		current: observe.NewCell(Parse(pathname(location))),
		log:     log,
	}
}

// Current returns the Route for the current history entry.
func (n *Navigator) Current() Route { return n.current.Get() }

// Location returns the current history entry as it was pushed.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.entries[n.index]
}

// Len is the number of entries in the history.
func (n *Navigator) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// Subscribe registers fn for route changes; it is called immediately with
// the current Route.
func (n *Navigator) Subscribe(fn func(Route)) func() {
	unsub, _ := n.current.Subscribe(func(r Route) error {
		fn(r)
		return nil
	})
	return unsub
}

// NavigateTo pushes path onto the history, prefixing "/" when missing, and
// publishes the Route derived from it.
func (n *Navigator) NavigateTo(path string) Route {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	n.mu.Lock()
	n.entries = append(n.entries, path)
	n.index = len(n.entries) - 1
	n.mu.Unlock()

	return n.sync(path)
}

// HandleIntent decides whether a link activation stays inside the app. It
// returns true when it handled the navigation, in which case the caller must
// suppress the default full-page load.
func (n *Navigator) HandleIntent(l Link) bool {
	if !IsInternal(l) {
		return false
	}
	n.NavigateTo(l.Href)
	return true
}

// IsInternal reports whether l is a same-origin absolute path opened in the
// current browsing context.
func IsInternal(l Link) bool {
	href := l.Href
	if href == "" || strings.HasPrefix(href, "http") || strings.HasPrefix(href, "//") || l.Target == "_blank" {
		return false
	}
	return strings.HasPrefix(href, "/")
}

// Back moves one entry back, like the browser back button. It returns false
// when already at the first entry.
func (n *Navigator) Back() bool { return n.step(-1) }

// Forward moves one entry forward. It returns false at the newest entry.
func (n *Navigator) Forward() bool { return n.step(1) }

func (n *Navigator) step(delta int) bool {
	n.mu.Lock()
	next := n.index + delta
	if next < 0 || next >= len(n.entries) {
		n.mu.Unlock()
		return false
	}
	n.index = next
	loc := n.entries[next]
	n.mu.Unlock()

	n.sync(loc)
	return true
}

func (n *Navigator) sync(location string) Route {
	r := Parse(pathname(location))
	n.log.Debug("route changed", "location", location, "page", r.Page)
	_ = n.current.Set(r)
	return r
}
