package names

import "testing"

func TestInitials(t *testing.T) {
	if got := Initials("Jane Q"); got != "J. Q." {
		t.Fatalf("Initials: want 'J. Q.', got %q", got)
	}
	if got := Initials(""); got != "" {
		t.Fatalf("Initials empty: want '', got %q", got)
	}
}

func TestSplit(t *testing.T) {
	fam, giv := Split("Doe, Jane Q")
	if fam != "Doe" || giv != "Jane Q" {
		t.Fatalf("Split comma: got (%q,%q)", fam, giv)
	}
	fam, giv = Split("Jane Quimby Doe")
	if fam != "Doe" || giv != "Jane Quimby" {
		t.Fatalf("Split space: got (%q,%q)", fam, giv)
	}
	fam, giv = Split("UNESCO")
	if fam != "UNESCO" || giv != "" {
		t.Fatalf("Split corporate: got (%q,%q)", fam, giv)
	}
}

func TestKeyFragment(t *testing.T) {
	if got := KeyFragment("O'Brien-Smith"); got != "obriensmith" {
		t.Fatalf("KeyFragment: got %q", got)
	}
	if got := KeyFragment(" van der Berg "); got != "vanderberg" {
		t.Fatalf("KeyFragment spaces: got %q", got)
	}
}
