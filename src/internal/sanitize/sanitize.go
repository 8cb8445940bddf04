package sanitize

import (
	"net/url"
	"strings"

	"zotkit/src/internal/schema"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			if max > 0 && b.Len() >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Path = strings.ReplaceAll(u.Path, " ", "%20")
	return u.String()
}

// CleanTags dedupes tags case-insensitively, dropping empties.
func CleanTags(tags []schema.Tag) []schema.Tag {
	if len(tags) == 0 {
		return nil
	}
	seen := map[string]bool{}
	out := make([]schema.Tag, 0, len(tags))
	for _, t := range tags {
		v := CleanString(t.Tag, 128)
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		out = append(out, schema.Tag{Tag: v})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CleanItem normalizes an item snapshot in place right after decoding.
func CleanItem(it *schema.Item) {
	if it == nil {
		return
	}
	it.Key = CleanString(it.Key, 64)
	d := &it.Data
	d.ItemType = CleanString(d.ItemType, 64)
	d.Title = CleanString(d.Title, 1024)
	d.Date = CleanString(d.Date, 64)
	d.PubTitle = CleanString(d.PubTitle, 512)
	d.ConferenceName = CleanString(d.ConferenceName, 512)
	d.Volume = CleanString(d.Volume, 64)
	d.Issue = CleanString(d.Issue, 64)
	d.Pages = CleanString(d.Pages, 64)
	d.DOI = CleanString(d.DOI, 256)
	d.URL = CleanURL(d.URL)
	d.Abstract = CleanString(d.Abstract, 8192)
	d.Tags = CleanTags(d.Tags)
	creators := d.Creators[:0]
	for _, c := range d.Creators {
		c.FirstName = CleanString(c.FirstName, 256)
		c.LastName = CleanString(c.LastName, 256)
		c.Name = CleanString(c.Name, 256)
		if c.FirstName == "" && c.LastName == "" && c.Name == "" {
			continue
		}
		creators = append(creators, c)
	}
	d.Creators = creators
}

// CleanCollection normalizes a collection record in place after decoding.
func CleanCollection(c *schema.Collection) {
	if c == nil {
		return
	}
	c.Key = CleanString(c.Key, 64)
	c.Data.Name = CleanString(c.Data.Name, 512)
	c.Data.Parent = schema.ParentKey(CleanString(string(c.Data.Parent), 64))
}
