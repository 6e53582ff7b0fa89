package ids

import (
	"regexp"
	"testing"
)

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestNewOrgIDShape(t *testing.T) {
	SeedForTests(1)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewOrgID()
		if !uuidShape.MatchString(id) {
			t.Fatalf("identifier %q is not UUID-shaped", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewUsername(t *testing.T) {
	SeedForTests(2)
	u := NewUsername(8)
	if len(u) != 8 {
		t.Fatalf("expected 8 characters, got %q", u)
	}
	for _, r := range u {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			t.Fatalf("unexpected character %q in username %q", r, u)
		}
	}
	if NewUsername(0) == "" {
		t.Fatal("expected default length username")
	}
}

func TestNewIsSortableAndUnique(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Fatalf("expected distinct ulids, got %s twice", a)
	}
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("unexpected ulid lengths: %d %d", len(a), len(b))
	}
}
