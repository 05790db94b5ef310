package resources

import (
	"bytes"
	"testing"
)

func TestIcon(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused, IconBreak} {
		resource, err := Icon(name)
		if err != nil {
			t.Fatalf("Icon(%q): %v", name, err)
		}
		if resource.Name() != name {
			t.Fatalf("Name = %q, want %q", resource.Name(), name)
		}
		if !bytes.Contains(resource.Content(), []byte("<svg")) {
			t.Fatalf("Icon(%q) is not an svg", name)
		}

		again, _ := Icon(name)
		if again != resource {
			t.Fatalf("Icon(%q) not cached", name)
		}
	}
}

func TestIcon_Missing(t *testing.T) {
	if _, err := Icon("nope.svg"); err == nil {
		t.Fatalf("expected error for missing icon")
	}
}

func TestMustIcon_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustIcon should panic on a missing icon")
		}
	}()
	MustIcon("nope.svg")
}
