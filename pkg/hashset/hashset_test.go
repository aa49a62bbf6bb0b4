package hashset

import "testing"

func TestAddNew(t *testing.T) {
	s := New[string](2)
	if !s.AddNew("a") {
		t.Fatal("first insert of a should report new")
	}
	if s.AddNew("a") {
		t.Fatal("second insert of a should not report new")
	}
	if !s.Has("a") || s.Has("b") {
		t.Fatalf("unexpected membership: %v", s)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestFromSlice(t *testing.T) {
	s := FromSlice([]int{1, 2, 2, 3})
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	for _, v := range []int{1, 2, 3} {
		if !s.Has(v) {
			t.Errorf("missing %d", v)
		}
	}
}
