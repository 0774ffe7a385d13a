package routing

import (
	"context"
	"sync"
)

// Navigator records the navigation forced during one page load. The first
// target wins; later requests are ignored.
type Navigator struct {
	mu     sync.Mutex
	target string
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

// Navigate requests a full navigation to path. It reports whether this call
// set the target.
func (n *Navigator) Navigate(path string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target != "" || path == "" {
		return false
	}
	n.target = path
	return true
}

// Target returns the forced navigation target, if any
func (n *Navigator) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}

type navigatorKey struct{}

func NewContext(ctx context.Context, n *Navigator) context.Context {
	return context.WithValue(ctx, navigatorKey{}, n)
}

// FromContext returns the navigator carried by ctx, or nil
func FromContext(ctx context.Context) *Navigator {
	n, _ := ctx.Value(navigatorKey{}).(*Navigator)
	return n
}
