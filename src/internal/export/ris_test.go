package export

import (
	"strings"
	"testing"

	"zotkit/src/internal/schema"
)

func TestRISRecord(t *testing.T) {
	it := item("K1", "journalArticle", "A Title", "2008", author("Doe", "Jane"))
	it.Data.PubTitle = "Journal of Tests"
	it.Data.Pages = "10-20"
	it.Data.DOI = "10.1000/x"
	got := renderRIS([]schema.Item{it})
	for _, want := range []string{
		"TY  - JOUR\n",
		"AU  - Doe, Jane\n",
		"TI  - A Title\n",
		"T2  - Journal of Tests\n",
		"PY  - 2008\n",
		"SP  - 10\n",
		"EP  - 20\n",
		"DO  - 10.1000/x\n",
		"ER  - \n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if !strings.HasPrefix(got, "TY  - ") {
		t.Fatalf("TY must open the record:\n%s", got)
	}
}

func TestRISOneTerminatorPerRecord(t *testing.T) {
	items := []schema.Item{
		item("K1", "book", "One", "2000", author("A", "")),
		item("K2", "book", "Two", "2001", author("B", "")),
	}
	got := renderRIS(items)
	if n := strings.Count(got, "ER  - "); n != 2 {
		t.Fatalf("terminators: %d\n%s", n, got)
	}
}

func TestSplitPages(t *testing.T) {
	sp, ep, ok := splitPages("10-20")
	if !ok || sp != "10" || ep != "20" {
		t.Fatalf("range: %q %q %v", sp, ep, ok)
	}
	if _, _, ok := splitPages("42"); ok {
		t.Fatalf("single page treated as range")
	}
	sp, ep, ok = splitPages("100–110")
	if !ok || sp != "100" || ep != "110" {
		t.Fatalf("en dash: %q %q %v", sp, ep, ok)
	}
}
