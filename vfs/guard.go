package vfs

import (
	"strings"

	"github.com/jmgilman/go/vfs/pathutil"
)

// Guard decides whether a path may be touched. With no registered paths it
// allows everything; once a path is registered it denies every path that
// does not start with a registered prefix.
//
// Prefixes are compared as literal strings, not path segments: registering
// "/data" also authorizes "/database/". Register paths with a trailing
// separator to avoid this.
//
// TODO: switch to a segment-aware match once existing sandboxes have been
// audited for prefixes that rely on the literal comparison.
type Guard struct {
	allowed []string
	seen    map[string]struct{}
}

// NewGuard returns an unrestricted guard.
func NewGuard() *Guard {
	return &Guard{seen: make(map[string]struct{})}
}

// RegisterPath adds p to the allowed prefixes. Empty paths are ignored and
// duplicates are stored once.
func (g *Guard) RegisterPath(p string) {
	if p == "" {
		return
	}
	p = pathutil.AddTrailingSlash(p)
	if _, ok := g.seen[p]; ok {
		return
	}
	g.seen[p] = struct{}{}
	g.allowed = append(g.allowed, p)
}

// CheckAccess reports whether p may be accessed.
func (g *Guard) CheckAccess(p string) bool {
	if len(g.allowed) == 0 {
		return true
	}

	fixed := pathutil.AddTrailingSlash(p)
	if strings.Contains(fixed, "..") {
		return false
	}
	for _, prefix := range g.allowed {
		if strings.HasPrefix(fixed, prefix) {
			return true
		}
	}
	return false
}

// Restricted reports whether any allowed path is registered.
func (g *Guard) Restricted() bool {
	return len(g.allowed) > 0
}

// AllowedPaths returns the registered prefixes in registration order.
func (g *Guard) AllowedPaths() []string {
	return append([]string(nil), g.allowed...)
}
