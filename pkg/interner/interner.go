// Package interner maps property keys and identifiers to compact Name tokens.
//
// An Interner associates strings with sequential uint32 tags and allows
// lookup in both directions. Intern canonicalizes: equal text always yields
// the same Name. Gensym and GensymCopy hand out fresh Names that share the
// index space but are never reachable through Intern or Find, which makes
// them suitable for synthetic and private keys.
//
// An Interner is owned by one engine instance and is not safe for concurrent
// use.
package interner

import "fmt"

const debugInterner = false

// Name is an interned string token. It is only meaningful to the Interner
// that issued it.
type Name uint32

func (n Name) String() string {
	return fmt.Sprintf("Name(%d)", uint32(n))
}

// Index returns the token's position in the interner's sequence.
func (n Name) Index() int {
	return int(n)
}

type Interner struct {
	names map[string]Name
	texts []string
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{names: make(map[string]Name)}
}

// Prefill creates an Interner with each text interned in order, so the i-th
// distinct text receives Name(i).
func Prefill(texts ...string) *Interner {
	in := New()
	for _, t := range texts {
		in.Intern(t)
	}
	return in
}

// Intern returns the canonical Name for text, allocating the next sequential
// Name on first sight.
func (in *Interner) Intern(text string) Name {
	if n, ok := in.names[text]; ok {
		return n
	}
	n := Name(len(in.texts))
	in.names[text] = n
	in.texts = append(in.texts, text)
	if debugInterner {
		fmt.Printf("[DEBUG interner] intern %q -> %d\n", text, n)
	}
	return n
}

// Gensym allocates a fresh Name rendering as text. The Name is left out of
// the canonical map so it can never collide with an interned one.
func (in *Interner) Gensym(text string) Name {
	n := Name(len(in.texts))
	in.texts = append(in.texts, text)
	if debugInterner {
		fmt.Printf("[DEBUG interner] gensym %q -> %d\n", text, n)
	}
	return n
}

// GensymCopy allocates a fresh Name with the same text as an existing one.
func (in *Interner) GensymCopy(name Name) Name {
	return in.Gensym(in.Get(name))
}

// Get returns the text of name. Passing a Name this interner did not issue
// (or one issued before Clear) panics.
func (in *Interner) Get(name Name) string {
	if int(name) >= len(in.texts) {
		panic(fmt.Sprintf("interner: %s out of range (len %d)", name, len(in.texts)))
	}
	return in.texts[name]
}

// Find looks text up without inserting it. Gensym'd Names are never found.
func (in *Interner) Find(text string) (Name, bool) {
	n, ok := in.names[text]
	return n, ok
}

// Len returns the number of issued Names, gensyms included.
func (in *Interner) Len() int {
	return len(in.texts)
}

// Clear drops every entry. All Names issued before the call become invalid.
func (in *Interner) Clear() {
	in.names = make(map[string]Name)
	in.texts = nil
}

// Reset replaces this interner's tables with other's. other must not be used
// afterwards.
func (in *Interner) Reset(other *Interner) {
	in.names = other.names
	in.texts = other.texts
	other.names = nil
	other.texts = nil
}
