package export

import (
	"strings"
	"testing"

	"zotkit/src/internal/schema"
)

func TestMarkdownGroupsByYearDescending(t *testing.T) {
	items := []schema.Item{
		item("K1", "book", "Old Book", "1999", author("Doe", "Jane")),
		item("K2", "journalArticle", "New Paper", "2020", author("Roe", "Rick")),
		item("K3", "webpage", "No Date Page", ""),
	}
	got := renderMarkdown(items)
	i2020 := strings.Index(got, "## 2020")
	i1999 := strings.Index(got, "## 1999")
	iUnknown := strings.Index(got, "## Unknown")
	if i2020 < 0 || i1999 < 0 || iUnknown < 0 {
		t.Fatalf("missing sections:\n%s", got)
	}
	if !(i2020 < i1999 && i1999 < iUnknown) {
		t.Fatalf("section order wrong:\n%s", got)
	}
	if !strings.Contains(got, "- **New Paper** - Roe") {
		t.Fatalf("item line missing:\n%s", got)
	}
}

func TestMarkdownDOILink(t *testing.T) {
	it := item("K1", "journalArticle", "Paper", "2020", author("Doe", "Jane"))
	it.Data.DOI = "10.1000/x"
	got := renderMarkdown([]schema.Item{it})
	if !strings.Contains(got, "[DOI](https://doi.org/10.1000/x)") {
		t.Fatalf("doi link missing:\n%s", got)
	}
}

func TestShortAuthorsEtAl(t *testing.T) {
	it := item("K", "book", "T", "2000",
		author("A", ""), author("B", ""), author("C", ""), author("D", ""))
	if got := shortAuthors(it); got != "A, B, C et al." {
		t.Fatalf("et al: %q", got)
	}
	it2 := item("K", "book", "T", "2000", author("A", ""), author("B", ""))
	if got := shortAuthors(it2); got != "A, B" {
		t.Fatalf("two authors: %q", got)
	}
}
