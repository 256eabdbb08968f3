package ids

import (
	"regexp"
	"testing"
)

func TestNewGeneratorRejectsInvalidNode(t *testing.T) {
	if _, err := NewGenerator(-1); err == nil {
		t.Fatal("expected error for negative node id")
	}
}

func TestNextOrderIDShape(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alnum := regexp.MustCompile(`^[0-9A-Z]+$`)
	id := gen.NextOrderID()
	if !alnum.MatchString(id) {
		t.Fatalf("expected uppercase alphanumeric id, got %q", id)
	}
}

func TestNextOrderIDUnique(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := gen.NextOrderID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
