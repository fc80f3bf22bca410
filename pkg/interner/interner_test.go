package interner

import (
	"testing"
)

func TestInternCanonicalizes(t *testing.T) {
	in := New()
	for _, s := range []string{"", "a", "toString", "héllo", "a b"} {
		n1 := in.Intern(s)
		n2 := in.Intern(s)
		if n1 != n2 {
			t.Errorf("Intern(%q) returned %v then %v", s, n1, n2)
		}
		if got := in.Get(n1); got != s {
			t.Errorf("Get(Intern(%q)) = %q", s, got)
		}
	}
	if in.Len() != 5 {
		t.Errorf("expected 5 entries, got %d", in.Len())
	}
}

func TestInternSequential(t *testing.T) {
	in := New()
	a := in.Intern("a")
	b := in.Intern("b")
	in.Intern("a")
	c := in.Intern("c")
	if a != 0 || b != 1 || c != 2 {
		t.Errorf("expected sequential names 0,1,2, got %d,%d,%d", a, b, c)
	}
}

func TestGensymNeverCanonical(t *testing.T) {
	in := New()
	for _, s := range []string{"x", "y", ""} {
		interned := in.Intern(s)
		g := in.Gensym(s)
		if g == interned {
			t.Errorf("Gensym(%q) returned the interned name %v", s, g)
		}
		if in.Get(g) != s {
			t.Errorf("expected gensym to render as %q, got %q", s, in.Get(g))
		}
		found, ok := in.Find(s)
		if !ok || found != interned {
			t.Errorf("Find(%q) = %v,%v; expected %v", s, found, ok, interned)
		}
		if in.Intern(s) != interned {
			t.Errorf("Intern(%q) changed after gensym", s)
		}
	}
}

func TestGensymOfUnseenText(t *testing.T) {
	in := New()
	g := in.Gensym("private")
	if _, ok := in.Find("private"); ok {
		t.Errorf("expected Find to miss gensym-only text")
	}
	n := in.Intern("private")
	if n == g {
		t.Errorf("Intern returned the gensym'd name")
	}
	if g2 := in.Gensym("private"); g2 == g {
		t.Errorf("two gensyms of the same text must differ")
	}
}

func TestGensymCopy(t *testing.T) {
	in := New()
	orig := in.Intern("key")
	cp := in.GensymCopy(orig)
	if cp == orig {
		t.Fatalf("GensymCopy returned the original name")
	}
	if in.Get(cp) != "key" {
		t.Errorf("expected copy to render as %q, got %q", "key", in.Get(cp))
	}
	if found, _ := in.Find("key"); found != orig {
		t.Errorf("Find should still return the original, got %v", found)
	}
}

func TestFindDoesNotInsert(t *testing.T) {
	in := New()
	if _, ok := in.Find("missing"); ok {
		t.Errorf("expected Find to miss")
	}
	if in.Len() != 0 {
		t.Errorf("Find must not insert, len=%d", in.Len())
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	in := New()
	in.Intern("a")
	defer func() {
		if recover() == nil {
			t.Errorf("expected Get on an unissued name to panic")
		}
	}()
	in.Get(Name(7))
}

func TestClear(t *testing.T) {
	in := New()
	in.Intern("a")
	in.Gensym("b")
	in.Clear()
	if in.Len() != 0 {
		t.Errorf("expected empty interner after Clear, got %d", in.Len())
	}
	if _, ok := in.Find("a"); ok {
		t.Errorf("expected Find to miss after Clear")
	}
	if n := in.Intern("z"); n != 0 {
		t.Errorf("expected numbering to restart at 0, got %d", n)
	}
}

func TestPrefillAndReset(t *testing.T) {
	in := Prefill("a", "b", "a", "c")
	if in.Len() != 3 {
		t.Errorf("expected duplicates to collapse, got %d", in.Len())
	}
	if n, _ := in.Find("c"); n != 2 {
		t.Errorf("expected c at 2, got %d", n)
	}

	other := Prefill("q")
	in.Reset(other)
	if in.Len() != 1 || in.Get(0) != "q" {
		t.Errorf("Reset did not adopt the other tables")
	}
	if _, ok := in.Find("a"); ok {
		t.Errorf("old entries must be gone after Reset")
	}
}

func TestWellKnownNames(t *testing.T) {
	in := NewWithWellKnown()
	if in.Len() != int(wellKnownCount) {
		t.Fatalf("expected %d well-known names, got %d", wellKnownCount, in.Len())
	}
	tests := []struct {
		name Name
		text string
	}{
		{Length, "length"},
		{ToString, "toString"},
		{Value, "value"},
		{Configurable, "configurable"},
		{Set, "set"},
		{GlobalThis, "globalThis"},
	}
	for _, tt := range tests {
		if got := in.Get(tt.name); got != tt.text {
			t.Errorf("well-known %v: expected %q, got %q", tt.name, tt.text, got)
		}
		if in.Intern(tt.text) != tt.name {
			t.Errorf("Intern(%q) should return the well-known name", tt.text)
		}
	}
	if !IsWellKnown(ToString) || IsWellKnown(in.Intern("custom")) {
		t.Errorf("IsWellKnown misclassified a name")
	}
}
