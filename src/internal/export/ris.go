package export

import (
	"fmt"
	"strings"

	"zotkit/src/internal/schema"
)

// risTypeFor maps item types onto RIS reference types.
func risTypeFor(itemType string) string {
	switch strings.TrimSpace(itemType) {
	case "journalArticle":
		return "JOUR"
	case "conferencePaper":
		return "CONF"
	case "book":
		return "BOOK"
	case "bookSection":
		return "CHAP"
	case "thesis":
		return "THES"
	case "report":
		return "RPRT"
	case "webpage":
		return "ELEC"
	default:
		return "GEN"
	}
}

// renderRIS writes one tagged-line record per item, each terminated by ER.
func renderRIS(items []schema.Item) string {
	var b strings.Builder
	for _, it := range items {
		tag := func(k, v string) {
			v = strings.TrimSpace(v)
			if v == "" {
				return
			}
			fmt.Fprintf(&b, "%s  - %s\n", k, strings.ReplaceAll(v, "\n", " "))
		}
		tag("TY", risTypeFor(it.Data.ItemType))
		for _, a := range it.Authors() {
			fam, giv := a.FamilyGiven()
			switch {
			case fam != "" && giv != "":
				tag("AU", fam+", "+giv)
			case fam != "":
				tag("AU", fam)
			case giv != "":
				tag("AU", giv)
			}
		}
		tag("TI", it.Data.Title)
		tag("T2", it.Data.PubTitle)
		if y := it.Year(); y > 0 {
			tag("PY", fmt.Sprintf("%d", y))
		}
		tag("VL", it.Data.Volume)
		tag("IS", it.Data.Issue)
		if sp, ep, ok := splitPages(it.Data.Pages); ok {
			tag("SP", sp)
			tag("EP", ep)
		} else {
			tag("SP", it.Data.Pages)
		}
		tag("DO", it.Data.DOI)
		tag("UR", it.Data.URL)
		tag("AB", it.Data.Abstract)
		b.WriteString("ER  - \n\n")
	}
	return b.String()
}

// splitPages splits "12-34" style ranges into start and end pages.
func splitPages(pages string) (sp, ep string, ok bool) {
	pages = strings.TrimSpace(pages)
	i := strings.IndexAny(pages, "-–")
	if i <= 0 {
		return "", "", false
	}
	sp = strings.TrimSpace(pages[:i])
	ep = strings.TrimSpace(strings.TrimLeft(pages[i:], "-–"))
	if sp == "" || ep == "" {
		return "", "", false
	}
	return sp, ep, true
}
