package export

import (
	"encoding/json"
	"strings"

	"zotkit/src/internal/schema"
)

// CSL JSON shapes per the Citation Style Language data schema.
type cslAuthor struct {
	Family string `json:"family"`
	Given  string `json:"given,omitempty"`
}

type cslDate struct {
	DateParts [][]int `json:"date-parts"`
}

type cslItem struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Title          string      `json:"title"`
	Author         []cslAuthor `json:"author,omitempty"`
	Issued         *cslDate    `json:"issued,omitempty"`
	ContainerTitle string      `json:"container-title,omitempty"`
	Volume         string      `json:"volume,omitempty"`
	Issue          string      `json:"issue,omitempty"`
	Page           string      `json:"page,omitempty"`
	DOI            string      `json:"DOI,omitempty"`
	URL            string      `json:"URL,omitempty"`
	Abstract       string      `json:"abstract,omitempty"`
}

// cslTypeFor maps item types onto CSL item types.
func cslTypeFor(itemType string) string {
	switch strings.TrimSpace(itemType) {
	case "journalArticle":
		return "article-journal"
	case "conferencePaper":
		return "paper-conference"
	case "book":
		return "book"
	case "bookSection":
		return "chapter"
	case "thesis":
		return "thesis"
	case "report":
		return "report"
	case "webpage":
		return "webpage"
	default:
		return "document"
	}
}

func renderCSLJSON(items []schema.Item) ([]byte, error) {
	out := make([]cslItem, 0, len(items))
	for _, it := range items {
		ci := cslItem{
			ID:             it.Key,
			Type:           cslTypeFor(it.Data.ItemType),
			Title:          it.Data.Title,
			ContainerTitle: it.Data.PubTitle,
			Volume:         it.Data.Volume,
			Issue:          it.Data.Issue,
			Page:           it.Data.Pages,
			DOI:            it.Data.DOI,
			URL:            it.Data.URL,
			Abstract:       it.Data.Abstract,
		}
		for _, a := range it.Authors() {
			fam, giv := a.FamilyGiven()
			if fam == "" && giv == "" {
				continue
			}
			ci.Author = append(ci.Author, cslAuthor{Family: fam, Given: giv})
		}
		if y := it.Year(); y > 0 {
			ci.Issued = &cslDate{DateParts: [][]int{{y}}}
		}
		out = append(out, ci)
	}
	return json.MarshalIndent(out, "", "  ")
}
