package main

import (
	"testing"
)

// FuzzLevenshtein exercises the edit distance function with random string
// pairs to ensure it never panics and always returns a non-negative value.
func FuzzLevenshtein(f *testing.F) {
	f.Add("system", "sytem")
	f.Add("", "")
	f.Add("disk", "")
	f.Add("", "dns")
	f.Add("connectivity", "connectivty")
	f.Add("a", "a")
	f.Add("kitten", "sitting")

	f.Fuzz(func(t *testing.T, a, b string) {
		d := levenshtein(a, b)
		if d < 0 {
			t.Errorf("levenshtein(%q, %q) = %d, want >= 0", a, b, d)
		}
		// Symmetry property: distance(a,b) == distance(b,a)
		d2 := levenshtein(b, a)
		if d != d2 {
			t.Errorf("levenshtein(%q, %q) = %d but levenshtein(%q, %q) = %d", a, b, d, b, a, d2)
		}
	})
}

// FuzzMenuChoice feeds arbitrary menu answers through the choice parser to
// ensure it either maps to exactly one known selection or errors, without
// panicking.
func FuzzMenuChoice(f *testing.F) {
	f.Add("1")
	f.Add("9")
	f.Add("A")
	f.Add("q")
	f.Add("")
	f.Add("  3  ")
	f.Add("0")
	f.Add("10")
	f.Add("½")

	probes := testRegistry(f).List()

	f.Fuzz(func(t *testing.T, raw string) {
		names, err := menuChoice(raw, probes)
		if err != nil {
			if names != nil {
				t.Errorf("menuChoice(%q) returned names %v alongside error %v", raw, names, err)
			}
			return
		}
		if len(names) != 1 {
			t.Errorf("menuChoice(%q) = %v, want exactly one name", raw, names)
		}
	})
}
