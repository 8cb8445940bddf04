package schema

import (
	"encoding/json"
	"testing"
)

func TestParentKeyUnmarshal(t *testing.T) {
	var c Collection
	root := `{"key":"AAAA1111","data":{"name":"Root","parentCollection":false}}`
	if err := json.Unmarshal([]byte(root), &c); err != nil {
		t.Fatalf("unmarshal root: %v", err)
	}
	if c.Data.Parent != "" {
		t.Fatalf("root parent: got %q", c.Data.Parent)
	}
	child := `{"key":"BBBB2222","data":{"name":"Child","parentCollection":"AAAA1111"}}`
	if err := json.Unmarshal([]byte(child), &c); err != nil {
		t.Fatalf("unmarshal child: %v", err)
	}
	if c.Data.Parent != "AAAA1111" {
		t.Fatalf("child parent: got %q", c.Data.Parent)
	}
	bad := `{"key":"CCCC3333","data":{"name":"Bad","parentCollection":true}}`
	if err := json.Unmarshal([]byte(bad), &c); err == nil {
		t.Fatalf("expected error for parentCollection=true")
	}
}

func TestParentKeyMarshalRoundTrip(t *testing.T) {
	b, err := json.Marshal(CollectionData{Name: "Root"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var d CollectionData
	if err := json.Unmarshal(b, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Parent != "" {
		t.Fatalf("round trip parent: got %q", d.Parent)
	}
}

func TestCreatorFamilyGiven(t *testing.T) {
	fam, giv := Creator{FirstName: "Jane", LastName: "Doe"}.FamilyGiven()
	if fam != "Doe" || giv != "Jane" {
		t.Fatalf("personal: got (%q,%q)", fam, giv)
	}
	fam, giv = Creator{Name: "Robert C. Martin"}.FamilyGiven()
	if fam != "Martin" || giv != "Robert C." {
		t.Fatalf("single-field: got (%q,%q)", fam, giv)
	}
	fam, giv = Creator{Name: "UNESCO"}.FamilyGiven()
	if fam != "UNESCO" || giv != "" {
		t.Fatalf("corporate: got (%q,%q)", fam, giv)
	}
}

func TestItemYearAndAuthors(t *testing.T) {
	it := Item{Key: "K", Data: ItemData{
		ItemType: "journalArticle",
		Date:     "August 2008",
		Creators: []Creator{
			{Type: "author", LastName: "Doe", FirstName: "Jane"},
			{Type: "editor", LastName: "Roe", FirstName: "Rick"},
		},
	}}
	if it.Year() != 2008 {
		t.Fatalf("year: got %d", it.Year())
	}
	as := it.Authors()
	if len(as) != 1 || as[0].LastName != "Doe" {
		t.Fatalf("authors: got %+v", as)
	}
	// No tagged authors: fall back to all creators.
	it.Data.Creators[0].Type = "editor"
	if len(it.Authors()) != 2 {
		t.Fatalf("fallback authors: got %+v", it.Authors())
	}
}

func TestValidate(t *testing.T) {
	c := Collection{Key: "K", Data: CollectionData{Name: "N"}}
	if err := c.Validate(); err != nil {
		t.Fatalf("collection validate: %v", err)
	}
	c.Data.Name = " "
	if err := c.Validate(); err == nil {
		t.Fatalf("expected name error")
	}
	it := Item{Key: "K", Data: ItemData{ItemType: "book"}}
	if err := it.Validate(); err != nil {
		t.Fatalf("item validate: %v", err)
	}
	it.Data.ItemType = ""
	if err := it.Validate(); err == nil {
		t.Fatalf("expected itemType error")
	}
}

func TestIsAttachmentOrNote(t *testing.T) {
	if !(Item{Data: ItemData{ItemType: "attachment"}}).IsAttachmentOrNote() {
		t.Fatalf("attachment not flagged")
	}
	if !(Item{Data: ItemData{ItemType: "Note"}}).IsAttachmentOrNote() {
		t.Fatalf("note not flagged")
	}
	if (Item{Data: ItemData{ItemType: "book"}}).IsAttachmentOrNote() {
		t.Fatalf("book flagged")
	}
}
