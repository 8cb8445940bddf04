package collections

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"zotkit/src/internal/schema"
)

func coll(key, name, parent string, items int) schema.Collection {
	return schema.Collection{
		Key:  key,
		Data: schema.CollectionData{Name: name, Parent: schema.ParentKey(parent)},
		Meta: schema.CollectionMeta{NumItems: items},
	}
}

func TestBuildSimpleTree(t *testing.T) {
	f, warn := Build([]schema.Collection{
		coll("1", "B", "", 3),
		coll("2", "A", "1", 1),
	})
	if warn != 0 {
		t.Fatalf("warnings: %d", warn)
	}
	if len(f.Roots) != 1 || f.Roots[0].Collection.Data.Name != "B" {
		t.Fatalf("roots: %+v", f.Roots)
	}
	kids := f.Roots[0].Children
	if len(kids) != 1 || kids[0].Collection.Data.Name != "A" {
		t.Fatalf("children: %+v", kids)
	}
}

func TestBuildEveryRecordOnce(t *testing.T) {
	records := []schema.Collection{
		coll("r1", "Zeta", "", 0),
		coll("r2", "alpha", "", 0),
		coll("c1", "Mid", "r1", 0),
		coll("c2", "mid2", "r1", 0),
		coll("g1", "Leaf", "c1", 0),
		coll("orphan", "Orphan", "GONE", 0),
	}
	f, warn := Build(records)
	if warn != 0 {
		t.Fatalf("warnings: %d", warn)
	}
	seen := map[string]int{}
	f.Walk(func(n *Node, _ int) { seen[n.Collection.Key]++ })
	if len(seen) != len(records) {
		t.Fatalf("node count: got %d want %d", len(seen), len(records))
	}
	for k, c := range seen {
		if c != 1 {
			t.Fatalf("record %s appeared %d times", k, c)
		}
	}
	// Unresolved parent becomes a root, never dropped.
	names := make([]string, 0, len(f.Roots))
	for _, r := range f.Roots {
		names = append(names, r.Collection.Data.Name)
	}
	if strings.Join(names, ",") != "alpha,Orphan,Zeta" {
		t.Fatalf("root order: %v", names)
	}
}

func TestBuildOrdersChildrenCaseInsensitive(t *testing.T) {
	f, _ := Build([]schema.Collection{
		coll("p", "P", "", 0),
		coll("c", "banana", "p", 0),
		coll("b", "Apple", "p", 0),
		coll("a", "cherry", "p", 0),
	})
	var got []string
	for _, n := range f.Roots[0].Children {
		got = append(got, n.Collection.Data.Name)
	}
	if strings.Join(got, ",") != "Apple,banana,cherry" {
		t.Fatalf("child order: %v", got)
	}
}

func TestBuildBreaksCycles(t *testing.T) {
	f, warn := Build([]schema.Collection{
		coll("a", "A", "b", 0),
		coll("b", "B", "a", 0),
	})
	if warn != 1 {
		t.Fatalf("warnings: %d", warn)
	}
	count := 0
	f.Walk(func(*Node, int) { count++ })
	if count != 2 {
		t.Fatalf("nodes after cycle break: %d", count)
	}
	if len(f.Roots) != 1 {
		t.Fatalf("roots after cycle break: %d", len(f.Roots))
	}
}

func TestBuildSelfParent(t *testing.T) {
	f, warn := Build([]schema.Collection{coll("a", "A", "a", 0)})
	if warn != 1 || len(f.Roots) != 1 || len(f.Roots[0].Children) != 0 {
		t.Fatalf("self parent: warn=%d roots=%+v", warn, f.Roots)
	}
}

func TestRenderText(t *testing.T) {
	f, _ := Build([]schema.Collection{
		coll("1", "B", "", 3),
		coll("2", "A", "1", 1),
	})
	var buf bytes.Buffer
	if err := f.RenderText(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "B (3 items) [1]\n  ├── A (1 items) [2]\n"
	if buf.String() != want {
		t.Fatalf("text:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestRenderMarkdown(t *testing.T) {
	f, _ := Build([]schema.Collection{
		coll("1", "B", "", 3),
		coll("2", "A", "1", 1),
	})
	got := f.RenderMarkdown()
	if !strings.HasPrefix(got, "# Zotero Collections\n\n- **B** (3 items)\n  - **A** (1 items)\n") {
		t.Fatalf("markdown:\n%s", got)
	}
}

func TestRenderJSON(t *testing.T) {
	f, _ := Build([]schema.Collection{
		coll("1", "B", "", 3),
		coll("2", "A", "1", 1),
	})
	b, err := f.RenderJSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var nodes []struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		Children []struct {
			Name string `json:"name"`
		} `json:"children"`
	}
	if err := json.Unmarshal(b, &nodes); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "B" || len(nodes[0].Children) != 1 || nodes[0].Children[0].Name != "A" {
		t.Fatalf("shape: %+v", nodes)
	}
}
