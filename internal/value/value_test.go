package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null{}, false},
		{Unit{}, false},
		{Int(0), false},
		{Int(1), true},
		{Float(0), false},
		{Float(0.5), true},
		{Char('a'), true},
		{(*List)(nil), false},
		{NewList([]Value{Int(1)}), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestListConsAndSlice(t *testing.T) {
	l := Cons(Int(1), Cons(Int(2), Cons(Int(3), nil)))
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	got := l.Slice()
	want := []int64{1, 2, 3}
	for i, w := range want {
		if int64(got[i].(Int)) != w {
			t.Fatalf("Slice()[%d] = %v, want %d", i, got[i], w)
		}
	}
}

func TestEmptyListIsNilPointer(t *testing.T) {
	var l *List
	if l.Len() != 0 {
		t.Fatalf("Len() of nil list = %d, want 0", l.Len())
	}
	if l.String() != "[]" {
		t.Fatalf("String() of nil list = %q, want []", l.String())
	}
}

func TestStringListRendersQuoted(t *testing.T) {
	l := NewStringList("hi")
	if !l.IsString() {
		t.Fatalf("expected IsString() true")
	}
	if l.String() != `"hi"` {
		t.Fatalf("String() = %q, want \"hi\"", l.String())
	}
}

func TestMixedListRendersBracketed(t *testing.T) {
	l := NewList([]Value{Int(1), Char('a')})
	if l.IsString() {
		t.Fatalf("mixed list should not be treated as a string")
	}
	want := `[1, 'a']`
	if l.String() != want {
		t.Fatalf("String() = %q, want %q", l.String(), want)
	}
}

func TestNthAndNodeAt(t *testing.T) {
	l := NewList([]Value{Int(10), Int(20), Int(30)})
	v, ok := l.Nth(1)
	if !ok || v != Int(20) {
		t.Fatalf("Nth(1) = %v, %v", v, ok)
	}
	if _, ok := l.Nth(5); ok {
		t.Fatalf("Nth(5) should be out of bounds")
	}

	node, ok := l.NodeAt(1)
	if !ok {
		t.Fatalf("NodeAt(1) not found")
	}
	node.Head = Int(99)
	v2, _ := l.Nth(1)
	if v2 != Int(99) {
		t.Fatalf("mutating NodeAt(1) did not affect the list: %v", v2)
	}
}

func TestAppend(t *testing.T) {
	a := NewList([]Value{Int(1), Int(2)})
	b := NewList([]Value{Int(3)})
	joined := Append(a, b)
	if joined.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", joined.Len())
	}
	if a.Len() != 2 {
		t.Fatalf("Append mutated its left operand")
	}
}

func TestIndexLValueMutatesSharedList(t *testing.T) {
	l := NewList([]Value{Int(1), Int(2)})
	node, _ := l.NodeAt(0)
	lv := NewIndexLValue(node, false)
	if !lv.Store(Int(100)) {
		t.Fatalf("Store failed")
	}
	v, _ := l.Nth(0)
	if v != Int(100) {
		t.Fatalf("index lvalue did not mutate shared list: %v", v)
	}
}

func TestIndexLValueConstRejectsStore(t *testing.T) {
	l := NewList([]Value{Int(1), Int(2)})
	node, _ := l.NodeAt(0)
	lv := NewIndexLValue(node, true)
	if lv.Store(Int(100)) {
		t.Fatalf("Store succeeded through a const index lvalue")
	}
	v, _ := l.Nth(0)
	if v != Int(1) {
		t.Fatalf("const Store mutated the list: %v", v)
	}
}

func TestFlattenPassesThroughNonLValue(t *testing.T) {
	if Flatten(Int(5)) != Int(5) {
		t.Fatalf("Flatten should pass through plain values")
	}
}
