package arena

import "testing"

func TestArenaAllocAndGet(t *testing.T) {
	a := New[string]()
	id1 := a.Alloc("first")
	id2 := a.Alloc("second")

	if id1.IsZero() || id2.IsZero() {
		t.Fatalf("allocated IDs should not be zero")
	}
	if *a.Get(id1) != "first" {
		t.Fatalf("got %q", *a.Get(id1))
	}
	if *a.Get(id2) != "second" {
		t.Fatalf("got %q", *a.Get(id2))
	}
}

func TestArenaZeroIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on zero ID")
		}
	}()
	a := New[int]()
	a.Get(0)
}

func TestArenaAllIteratesInOrder(t *testing.T) {
	a := New[int]()
	a.Alloc(10)
	a.Alloc(20)
	a.Alloc(30)

	var got []int
	a.All(func(id ID, v *int) bool {
		got = append(got, *v)
		return true
	})
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Fatalf("got %v", got)
	}
}

func TestArenaAllStopsOnFalse(t *testing.T) {
	a := New[int]()
	a.Alloc(1)
	a.Alloc(2)
	a.Alloc(3)

	count := 0
	a.All(func(id ID, v *int) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Fatalf("expected early stop at 2, got %d", count)
	}
}
