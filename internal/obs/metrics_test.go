package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                               "/",
		"/metrics":                       "/metrics",
		"/v1/organizations/abc":          "/v1/organizations/:id",
		"/v1/organizations/abc/sync":     "/v1/organizations/:id/sync",
		"/v1/insights/risk":              "/v1/insights/risk",
		"/v1/insights/risk?refresh=true": "/v1/insights/risk",
		"/v1/auth/login":                 "/v1/auth/login",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
