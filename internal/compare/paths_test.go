package compare

import "testing"

func TestPaths(t *testing.T) {
	path := elementPath(fieldPath(fieldPath(RootPath, "orders"), "items"))
	if path != "root.orders.items[]" {
		t.Fatalf("unexpected path: %q", path)
	}

	segments := PathSegments(fieldPath(path, "sku"))
	want := []string{"root", "orders", "items[]", "sku"}
	if len(segments) != len(want) {
		t.Fatalf("unexpected segments %v", segments)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Fatalf("unexpected segment[%d]=%q want %q", i, segments[i], want[i])
		}
	}
	if PathSegments("") != nil {
		t.Fatalf("expected no segments for an empty path")
	}
}
