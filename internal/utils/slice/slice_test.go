package slice

import (
	"reflect"
	"testing"
)

func TestContains(t *testing.T) {
	items := []string{"debug", "info", "warn", "error"}

	if !Contains(items, "warn") {
		t.Error("Expected Contains to find existing element")
	}
	if Contains(items, "trace") {
		t.Error("Expected Contains to miss absent element")
	}
	if Contains(nil, "anything") {
		t.Error("Expected Contains on nil slice to be false")
	}
}

func TestDedup(t *testing.T) {
	got := Dedup([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedup = %v, want %v", got, want)
	}

	if got := Dedup(nil); len(got) != 0 {
		t.Errorf("Dedup(nil) = %v, want empty", got)
	}
}
