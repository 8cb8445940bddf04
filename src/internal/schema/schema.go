package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"zotkit/src/internal/dates"
	"zotkit/src/internal/names"
)

// ParentKey is an optional collection parent reference. On the wire the
// API encodes "no parent" as the JSON literal false, so it can unmarshal
// from either a string key or a boolean.
type ParentKey string

func (p *ParentKey) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" || string(b) == "false" {
		*p = ""
		return nil
	}
	if string(b) == "true" {
		return errors.New("parentCollection: true is not a valid parent key")
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("parentCollection: %w", err)
	}
	*p = ParentKey(strings.TrimSpace(s))
	return nil
}

func (p ParentKey) MarshalJSON() ([]byte, error) {
	if p == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(p))
}

// Collection is one collection record as returned by the API.
type Collection struct {
	Key  string         `json:"key"`
	Data CollectionData `json:"data"`
	Meta CollectionMeta `json:"meta"`
}

type CollectionData struct {
	Name   string    `json:"name"`
	Parent ParentKey `json:"parentCollection"`
}

type CollectionMeta struct {
	NumItems int `json:"numItems"`
}

// Validate applies the rules enforced at the API boundary.
func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("collection key is required")
	}
	if strings.TrimSpace(c.Data.Name) == "" {
		return fmt.Errorf("collection %s: name is required", c.Key)
	}
	return nil
}

// Creator is a single item creator. Personal creators carry FirstName and
// LastName; corporate creators carry only Name.
type Creator struct {
	Type      string `json:"creatorType"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name,omitempty"`
}

// FamilyGiven returns the creator's family and given names, splitting the
// single-field corporate/full-name form when needed.
func (c Creator) FamilyGiven() (family, given string) {
	if strings.TrimSpace(c.LastName) != "" || strings.TrimSpace(c.FirstName) != "" {
		return strings.TrimSpace(c.LastName), strings.TrimSpace(c.FirstName)
	}
	return names.Split(c.Name)
}

// Item is one bibliographic item record as returned by the API. It is an
// immutable snapshot; nothing mutates it after the boundary pass.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Data    ItemData `json:"data"`
}

type ItemData struct {
	ItemType       string    `json:"itemType"`
	Title          string    `json:"title"`
	Creators       []Creator `json:"creators,omitempty"`
	Date           string    `json:"date,omitempty"`
	PubTitle       string    `json:"publicationTitle,omitempty"`
	ConferenceName string    `json:"conferenceName,omitempty"`
	Volume         string    `json:"volume,omitempty"`
	Issue          string    `json:"issue,omitempty"`
	Pages          string    `json:"pages,omitempty"`
	DOI            string    `json:"DOI,omitempty"`
	URL            string    `json:"url,omitempty"`
	Abstract       string    `json:"abstractNote,omitempty"`
	Tags           []Tag     `json:"tags,omitempty"`
	Collections    []string  `json:"collections,omitempty"`
}

type Tag struct {
	Tag string `json:"tag"`
}

// Year extracts a plausible publication year from the free-form date field.
// Returns 0 when no year can be found.
func (it Item) Year() int { return dates.ExtractYear(it.Data.Date) }

// Authors returns the creators that count as authors; when no creator is
// tagged as an author it falls back to all creators.
func (it Item) Authors() []Creator {
	var out []Creator
	for _, c := range it.Data.Creators {
		if strings.EqualFold(c.Type, "author") {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return it.Data.Creators
	}
	return out
}

// IsAttachmentOrNote reports whether the item is a non-bibliographic child
// record. These are skipped by listings and exports.
func (it Item) IsAttachmentOrNote() bool {
	switch strings.ToLower(strings.TrimSpace(it.Data.ItemType)) {
	case "attachment", "note":
		return true
	}
	return false
}

// Validate applies the rules enforced at the API boundary.
func (it *Item) Validate() error {
	if strings.TrimSpace(it.Key) == "" {
		return errors.New("item key is required")
	}
	if strings.TrimSpace(it.Data.ItemType) == "" {
		return fmt.Errorf("item %s: itemType is required", it.Key)
	}
	return nil
}
