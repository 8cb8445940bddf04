package collections

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"zotkit/src/internal/schema"
)

// Node is one collection in the assembled forest.
type Node struct {
	Collection schema.Collection
	Children   []*Node
}

// Forest is the rooted forest built from one flat fetch of collection
// records. It is rebuilt per invocation and never persisted.
type Forest struct {
	Roots []*Node
}

// Build assembles the forest from flat records. Every record appears exactly
// once: records with no parent or an unresolved parent become roots, and a
// parent chain that revisits a node on the current walk is broken by
// re-rooting the revisited node. The returned count is the number of cycle
// breaks, for the caller to surface as a warning.
func Build(records []schema.Collection) (Forest, int) {
	nodes := make(map[string]*Node, len(records))
	keys := make([]string, 0, len(records))
	for i := range records {
		c := records[i]
		if _, dup := nodes[c.Key]; dup {
			continue
		}
		nodes[c.Key] = &Node{Collection: c}
		keys = append(keys, c.Key)
	}
	sort.Strings(keys)

	// Effective parent after resolving unknowns and breaking cycles.
	parent := make(map[string]string, len(nodes))
	for k, n := range nodes {
		p := string(n.Collection.Data.Parent)
		if _, ok := nodes[p]; !ok {
			p = ""
		}
		parent[k] = p
	}

	const (
		unvisited = iota
		walking
		done
	)
	state := make(map[string]int, len(nodes))
	warnings := 0
	for _, k := range keys {
		if state[k] != unvisited {
			continue
		}
		path := []string{}
		cur := k
		for cur != "" && state[cur] == unvisited {
			state[cur] = walking
			path = append(path, cur)
			p := parent[cur]
			if p != "" && state[p] == walking {
				// Revisited an ancestor on this walk: re-root it.
				parent[p] = ""
				warnings++
				break
			}
			cur = p
		}
		for _, v := range path {
			state[v] = done
		}
	}

	var f Forest
	for _, k := range keys {
		n := nodes[k]
		if p := parent[k]; p != "" {
			nodes[p].Children = append(nodes[p].Children, n)
		} else {
			f.Roots = append(f.Roots, n)
		}
	}
	sortNodes(f.Roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}
	return f, warnings
}

// sortNodes orders siblings by name, case-insensitive, key as tiebreaker.
func sortNodes(ns []*Node) {
	sort.Slice(ns, func(i, j int) bool {
		a := strings.ToLower(ns[i].Collection.Data.Name)
		b := strings.ToLower(ns[j].Collection.Data.Name)
		if a != b {
			return a < b
		}
		return ns[i].Collection.Key < ns[j].Collection.Key
	})
}

// Walk visits every node depth-first in display order, recomputed per call.
func (f Forest) Walk(fn func(n *Node, depth int)) {
	var rec func(ns []*Node, depth int)
	rec = func(ns []*Node, depth int) {
		for _, n := range ns {
			fn(n, depth)
			rec(n.Children, depth+1)
		}
	}
	rec(f.Roots, 0)
}

// Len returns the total number of nodes in the forest.
func (f Forest) Len() int {
	n := 0
	f.Walk(func(*Node, int) { n++ })
	return n
}

// RenderText writes the terminal tree view.
func (f Forest) RenderText(w io.Writer) error {
	var err error
	f.Walk(func(n *Node, depth int) {
		if err != nil {
			return
		}
		prefix := strings.Repeat("  ", depth)
		if depth > 0 {
			prefix += "├── "
		}
		_, err = fmt.Fprintf(w, "%s%s (%d items) [%s]\n",
			prefix, n.Collection.Data.Name, n.Collection.Meta.NumItems, n.Collection.Key)
	})
	return err
}

// RenderMarkdown returns the tree as a nested Markdown bullet list.
func (f Forest) RenderMarkdown() string {
	var b strings.Builder
	b.WriteString("# Zotero Collections\n\n")
	f.Walk(func(n *Node, depth int) {
		fmt.Fprintf(&b, "%s- **%s** (%d items)\n",
			strings.Repeat("  ", depth), n.Collection.Data.Name, n.Collection.Meta.NumItems)
	})
	return b.String()
}

type jsonNode struct {
	Key       string     `json:"key"`
	Name      string     `json:"name"`
	ItemCount int        `json:"item_count"`
	Children  []jsonNode `json:"children"`
}

// RenderJSON returns the tree as indented JSON.
func (f Forest) RenderJSON() ([]byte, error) {
	var conv func(ns []*Node) []jsonNode
	conv = func(ns []*Node) []jsonNode {
		out := make([]jsonNode, 0, len(ns))
		for _, n := range ns {
			out = append(out, jsonNode{
				Key:       n.Collection.Key,
				Name:      n.Collection.Data.Name,
				ItemCount: n.Collection.Meta.NumItems,
				Children:  conv(n.Children),
			})
		}
		return out
	}
	return json.MarshalIndent(conv(f.Roots), "", "  ")
}
