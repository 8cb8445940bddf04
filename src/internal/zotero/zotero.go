package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"zotkit/src/internal/config"
	"zotkit/src/internal/httpx"
	"zotkit/src/internal/sanitize"
	"zotkit/src/internal/schema"
)

// Error taxonomy for remote calls. Callers route on these with errors.Is.
var (
	ErrAuth        = errors.New("authentication failed")
	ErrRateLimited = errors.New("rate limited")
	ErrNetwork     = errors.New("network failure")
)

var client httpx.Doer = &http.Client{Timeout: 30 * time.Second}

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// pageSize is the per-request item/collection limit; pagination is always
// consumed fully before a fetch returns.
const pageSize = 100

// retryPolicy bounds the single rate-limit retry. The fallback delay applies
// when the server sends no usable Retry-After header.
type retryPolicy struct {
	retries  int
	fallback time.Duration
}

func (p retryPolicy) delay(resp *http.Response) time.Duration {
	if resp != nil {
		if s := strings.TrimSpace(resp.Header.Get("Retry-After")); s != "" {
			if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return p.fallback
}

// Client talks to one library on the remote API.
type Client struct {
	cfg   config.Config
	retry retryPolicy
}

// New builds a client for the configured library. Credentials are assumed
// validated by config.Load.
func New(cfg config.Config) *Client {
	return &Client{cfg: cfg, retry: retryPolicy{retries: 1, fallback: time.Second}}
}

// Open loads configuration and builds a client, failing fast before any
// network call when credentials are missing.
func Open() (*Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	return New(cfg), cfg, nil
}

// libraryPath returns the URL for a path under the configured library prefix.
func (c *Client) libraryPath(path string) string {
	return fmt.Sprintf("%s/%ss/%s%s", c.cfg.BaseURL, c.cfg.LibraryType, url.PathEscape(c.cfg.LibraryID), path)
}

// do issues one authenticated request, retrying once on 429 per the retry
// policy. Transport failures map to ErrNetwork, 401/403 to ErrAuth, and an
// exhausted 429 to ErrRateLimited. Any other non-2xx status is an error with
// a body snippet. The caller owns the response body on success.
func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, header http.Header) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, r)
		if err != nil {
			return nil, err
		}
		httpx.PrepareAPI(req)
		req.Header.Set("Zotero-API-Key", c.cfg.APIKey)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Set(k, v)
			}
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			drain(resp)
			return nil, fmt.Errorf("%w: http %d from %s", ErrAuth, resp.StatusCode, rawURL)
		case resp.StatusCode == http.StatusTooManyRequests:
			delay := c.retry.delay(resp)
			drain(resp)
			if attempt >= c.retry.retries {
				return nil, fmt.Errorf("%w: http 429 from %s", ErrRateLimited, rawURL)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			drain(resp)
			return nil, fmt.Errorf("zotero: http %d from %s: %s", resp.StatusCode, rawURL, strings.TrimSpace(string(b)))
		default:
			return resp, nil
		}
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

// getPages fetches a JSON-array endpoint page by page until the set reported
// by the Total-Results header is fully consumed.
func (c *Client) getPages(ctx context.Context, rawURL string, query url.Values) ([]json.RawMessage, error) {
	if query == nil {
		query = url.Values{}
	}
	var elems []json.RawMessage
	start := 0
	for {
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(pageSize))
		resp, err := c.do(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil, nil)
		if err != nil {
			return nil, err
		}
		var page []json.RawMessage
		err = json.NewDecoder(resp.Body).Decode(&page)
		total, _ := strconv.Atoi(resp.Header.Get("Total-Results"))
		drain(resp)
		if err != nil {
			return nil, fmt.Errorf("zotero: decode %s: %w", rawURL, err)
		}
		elems = append(elems, page...)
		start += len(page)
		if len(page) < pageSize {
			break
		}
		if total > 0 && start >= total {
			break
		}
	}
	return elems, nil
}

// Collections fetches every collection record in the library.
func (c *Client) Collections(ctx context.Context) ([]schema.Collection, error) {
	raw, err := c.getPages(ctx, c.libraryPath("/collections"), nil)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Collection, 0, len(raw))
	for _, r := range raw {
		var col schema.Collection
		if err := json.Unmarshal(r, &col); err != nil {
			return nil, fmt.Errorf("zotero: decode collection: %w", err)
		}
		sanitize.CleanCollection(&col)
		if err := col.Validate(); err != nil {
			return nil, fmt.Errorf("zotero: %w", err)
		}
		out = append(out, col)
	}
	return out, nil
}

// Items fetches the items of one collection, or the library's top-level
// items when collectionKey is empty. Attachments and notes are dropped.
func (c *Client) Items(ctx context.Context, collectionKey string) ([]schema.Item, error) {
	path := "/items/top"
	if strings.TrimSpace(collectionKey) != "" {
		path = "/collections/" + url.PathEscape(collectionKey) + "/items"
	}
	raw, err := c.getPages(ctx, c.libraryPath(path), nil)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Item, 0, len(raw))
	for _, r := range raw {
		var it schema.Item
		if err := json.Unmarshal(r, &it); err != nil {
			return nil, fmt.Errorf("zotero: decode item: %w", err)
		}
		sanitize.CleanItem(&it)
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("zotero: %w", err)
		}
		if it.IsAttachmentOrNote() {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// FindCollection resolves a collection by exact key or case-insensitive name.
func (c *Client) FindCollection(ctx context.Context, nameOrKey string) (schema.Collection, bool, error) {
	cols, err := c.Collections(ctx)
	if err != nil {
		return schema.Collection{}, false, err
	}
	for _, col := range cols {
		if col.Key == nameOrKey {
			return col, true, nil
		}
	}
	for _, col := range cols {
		if strings.EqualFold(col.Data.Name, nameOrKey) {
			return col, true, nil
		}
	}
	return schema.Collection{}, false, nil
}

// CreateCollection creates a collection, nested under parentKey when given.
func (c *Client) CreateCollection(ctx context.Context, name, parentKey string) error {
	payload := []schema.CollectionData{{Name: name, Parent: schema.ParentKey(parentKey)}}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, c.libraryPath("/collections"), body, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// AddItemToCollection adds an item to a collection via read-modify-write,
// guarded by the item version to avoid clobbering concurrent edits.
func (c *Client) AddItemToCollection(ctx context.Context, itemKey, collectionKey string) error {
	resp, err := c.do(ctx, http.MethodGet, c.libraryPath("/items/"+url.PathEscape(itemKey)), nil, nil)
	if err != nil {
		return err
	}
	var it schema.Item
	err = json.NewDecoder(resp.Body).Decode(&it)
	drain(resp)
	if err != nil {
		return fmt.Errorf("zotero: decode item %s: %w", itemKey, err)
	}
	for _, k := range it.Data.Collections {
		if k == collectionKey {
			return nil
		}
	}
	patch, err := json.Marshal(map[string][]string{
		"collections": append(it.Data.Collections, collectionKey),
	})
	if err != nil {
		return err
	}
	h := http.Header{}
	h.Set("If-Unmodified-Since-Version", strconv.Itoa(it.Version))
	resp, err = c.do(ctx, http.MethodPatch, c.libraryPath("/items/"+url.PathEscape(itemKey)), patch, h)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// KeyInfo verifies the API key by fetching its descriptor.
func (c *Client) KeyInfo(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/keys/current", nil, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}
