package guide

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Route identifies a page.
type Route int

const (
	RouteHome Route = iota
	RouteSSH
	RouteGitGuide
	RouteNotFound
)

// Known paths.
const (
	PathHome     = "/"
	PathSSH      = "/ssh"
	PathGitGuide = "/gitguide"
)

var routeTable = []struct {
	path  string
	route Route
}{
	{PathHome, RouteHome},
	{PathSSH, RouteSSH},
	{PathGitGuide, RouteGitGuide},
}

// String returns the page name.
func (r Route) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteSSH:
		return "ssh"
	case RouteGitGuide:
		return "gitguide"
	case RouteNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Path returns the canonical path of r. RouteNotFound has no path.
func (r Route) Path() string {
	for _, e := range routeTable {
		if e.route == r {
			return e.path
		}
	}
	return ""
}

// KnownPaths lists every routable path in table order.
func KnownPaths() []string {
	out := make([]string, len(routeTable))
	for i, e := range routeTable {
		out[i] = e.path
	}
	return out
}

// NormalizePath lowercases p, trims whitespace, ensures a leading slash, and drops
// one trailing slash. The empty string normalizes to "/".
func NormalizePath(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Resolve maps a path to its page. Anything unknown is RouteNotFound.
func Resolve(path string) Route {
	p := NormalizePath(path)
	for _, e := range routeTable {
		if e.path == p {
			return e.route
		}
	}
	return RouteNotFound
}

// SuggestPath returns the known path that best fuzzy-matches an unknown one.
func SuggestPath(path string) (string, bool) {
	p := NormalizePath(path)
	if Resolve(p) != RouteNotFound {
		return "", false
	}
	pattern := strings.TrimPrefix(p, "/")
	if pattern == "" {
		return "", false
	}
	matches := fuzzy.Find(pattern, KnownPaths())
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
