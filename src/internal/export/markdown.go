package export

import (
	"fmt"
	"sort"
	"strings"

	"zotkit/src/internal/dates"
	"zotkit/src/internal/schema"
)

// renderMarkdown writes a reading list grouped by year, newest first, with
// unknown years at the end.
func renderMarkdown(items []schema.Item) string {
	byYear := map[int][]schema.Item{}
	for _, it := range items {
		byYear[it.Year()] = append(byYear[it.Year()], it)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	// Newest first; year 0 (unknown) is smallest and lands last.
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var b strings.Builder
	b.WriteString("# Zotero Library Export\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", dates.NowISO())
	for _, y := range years {
		label := "Unknown"
		if y > 0 {
			label = fmt.Sprintf("%d", y)
		}
		fmt.Fprintf(&b, "\n## %s\n\n", label)
		for _, it := range byYear[y] {
			title := it.Data.Title
			if strings.TrimSpace(title) == "" {
				title = "Untitled"
			}
			line := fmt.Sprintf("- **%s**", title)
			if a := shortAuthors(it); a != "" {
				line += " - " + a
			}
			if doi := strings.TrimSpace(it.Data.DOI); doi != "" {
				line += fmt.Sprintf(" [DOI](https://doi.org/%s)", doi)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// shortAuthors renders up to three family names, then "et al.".
func shortAuthors(it schema.Item) string {
	as := it.Authors()
	fams := make([]string, 0, 3)
	for _, a := range as {
		fam, giv := a.FamilyGiven()
		if fam == "" {
			fam = giv
		}
		if fam == "" {
			continue
		}
		fams = append(fams, fam)
		if len(fams) == 3 {
			break
		}
	}
	out := strings.Join(fams, ", ")
	if len(as) > 3 && out != "" {
		out += " et al."
	}
	return out
}
