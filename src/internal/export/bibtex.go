package export

import (
	"bytes"
	"fmt"
	"strings"

	"zotkit/src/internal/names"
	"zotkit/src/internal/schema"
	"zotkit/src/internal/stringsx"
)

// bibTypeFor maps item types onto BibTeX entry types.
func bibTypeFor(itemType string) string {
	switch strings.TrimSpace(itemType) {
	case "journalArticle":
		return "article"
	case "conferencePaper":
		return "inproceedings"
	case "book":
		return "book"
	case "bookSection":
		return "incollection"
	case "thesis":
		return "phdthesis"
	case "report":
		return "techreport"
	default:
		return "misc"
	}
}

// bibKeys assigns citation keys in input order: first-author family + year,
// with a, b, c... suffixes wherever the base key collides.
func bibKeys(items []schema.Item) []string {
	bases := make([]string, len(items))
	count := map[string]int{}
	for i, it := range items {
		base := "anon"
		if as := it.Authors(); len(as) > 0 {
			fam, _ := as[0].FamilyGiven()
			if k := names.KeyFragment(fam); k != "" {
				base = k
			}
		}
		if y := it.Year(); y > 0 {
			base += fmt.Sprintf("%d", y)
		} else {
			base += "nodate"
		}
		bases[i] = base
		count[base]++
	}
	seen := map[string]int{}
	out := make([]string, len(items))
	for i, base := range bases {
		if count[base] == 1 {
			out[i] = base
			continue
		}
		out[i] = base + suffixLetters(seen[base])
		seen[base]++
	}
	return out
}

// suffixLetters converts 0,1,2... into a,b,...,z,aa,ab...
func suffixLetters(n int) string {
	s := ""
	for {
		s = string(rune('a'+n%26)) + s
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return s
}

func renderBibTeX(items []schema.Item) []byte {
	keys := bibKeys(items)
	var buf bytes.Buffer
	for i, it := range items {
		buf.WriteString(itemToBibTeX(it, keys[i]))
	}
	return buf.Bytes()
}

func itemToBibTeX(it schema.Item, key string) string {
	w := func(k, v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		return fmt.Sprintf("  %s = {%s},\n", k, escapeBib(v))
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "@%s{%s,\n", bibTypeFor(it.Data.ItemType), key)
	b.WriteString(w("author", bibAuthors(it)))
	b.WriteString(w("title", it.Data.Title))
	switch it.Data.ItemType {
	case "journalArticle":
		b.WriteString(w("journal", it.Data.PubTitle))
	case "conferencePaper":
		b.WriteString(w("booktitle", stringsx.FirstNonEmpty(it.Data.ConferenceName, it.Data.PubTitle)))
	case "bookSection":
		b.WriteString(w("booktitle", it.Data.PubTitle))
	}
	b.WriteString(w("volume", it.Data.Volume))
	b.WriteString(w("number", it.Data.Issue))
	b.WriteString(w("pages", it.Data.Pages))
	if y := it.Year(); y > 0 {
		b.WriteString(w("year", fmt.Sprintf("%d", y)))
	}
	b.WriteString(w("doi", it.Data.DOI))
	b.WriteString(w("url", it.Data.URL))
	out := b.String()
	out = strings.TrimRight(out, "\n")
	out = strings.TrimRight(out, ",")
	return out + "\n}\n\n"
}

func bibAuthors(it schema.Item) string {
	as := it.Authors()
	parts := make([]string, 0, len(as))
	for _, a := range as {
		fam, giv := a.FamilyGiven()
		switch {
		case fam == "" && giv == "":
		case giv == "":
			parts = append(parts, fam)
		case fam == "":
			parts = append(parts, giv)
		default:
			parts = append(parts, fmt.Sprintf("%s, %s", fam, giv))
		}
	}
	return strings.Join(parts, " and ")
}

func escapeBib(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return strings.TrimSpace(s)
}
