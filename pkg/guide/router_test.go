package guide

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		path string
		want Route
	}{
		{"/", RouteHome},
		{"", RouteHome},
		{"/ssh", RouteSSH},
		{"/SSH/", RouteSSH},
		{"ssh", RouteSSH},
		{" /gitguide ", RouteGitGuide},
		{"/gitguide/", RouteGitGuide},
		{"/nonexistent", RouteNotFound},
		{"/gitguide/extra", RouteNotFound},
		{"//", RouteHome},
	}
	for _, tc := range cases {
		if got := Resolve(tc.path); got != tc.want {
			t.Fatalf("Resolve(%q): expected %s, got %s", tc.path, tc.want, got)
		}
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	for _, r := range []Route{RouteHome, RouteSSH, RouteGitGuide} {
		if got := Resolve(r.Path()); got != r {
			t.Fatalf("Resolve(%q) = %s, expected %s", r.Path(), got, r)
		}
	}
	if RouteNotFound.Path() != "" {
		t.Fatalf("expected not-found to have no path, got %q", RouteNotFound.Path())
	}
}

func TestSuggestPath(t *testing.T) {
	if p, ok := SuggestPath("/guide"); !ok || p != PathGitGuide {
		t.Fatalf("expected /gitguide suggestion for /guide, got %q ok=%v", p, ok)
	}
	if p, ok := SuggestPath("/sh"); !ok || p != PathSSH {
		t.Fatalf("expected /ssh suggestion for /sh, got %q ok=%v", p, ok)
	}
	if p, ok := SuggestPath("/nonexistent"); ok {
		t.Fatalf("expected no suggestion for /nonexistent, got %q", p)
	}
	if _, ok := SuggestPath("/ssh"); ok {
		t.Fatalf("expected no suggestion for a known path")
	}
}
