package tenant

import "testing"

func TestMatchesIdentifier(t *testing.T) {
	org := Organization{
		Email:        "acme@example.com",
		ContactEmail: "jane@example.com",
	}

	if !org.MatchesIdentifier("acme@example.com") {
		t.Fatal("primary email not matched")
	}
	if !org.MatchesIdentifier("jane@example.com") {
		t.Fatal("contact email not matched")
	}
	if org.MatchesIdentifier("other@example.com") {
		t.Fatal("foreign identifier matched")
	}
	if org.MatchesIdentifier("") {
		t.Fatal("empty identifier matched")
	}
}
