// Package sharepoint is a thin client for SharePoint list items via the
// Microsoft Graph API. Lists are addressed by name; items are an opaque id
// plus a flat field map, so the same client serves every record collection.
package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const defaultGraphBaseURL = "https://graph.microsoft.com/v1.0"

// ErrNotFound is returned when an item id no longer exists. Deletes map 404
// onto it so callers can treat re-deleting as a no-op.
var ErrNotFound = errors.New("sharepoint: item not found")

// StatusError is a non-success Graph response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sharepoint: graph API error %d: %s", e.StatusCode, e.Body)
}

// Item is a single list item: an opaque id and the list-specific field map.
type Item struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// listItemsResponse is the Graph paged response for list items.
type listItemsResponse struct {
	Value    []Item `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// Client performs list item operations against one SharePoint site.
// The http.Client must already carry authentication (oauth2 transport).
type Client struct {
	httpClient *http.Client
	listsURL   string
	log        *slog.Logger
}

// NewClient creates a client for the site identified by sitePath
// (e.g. "contoso.sharepoint.com:/sites/Timekeeping:"). baseURL overrides the
// Graph endpoint; pass "" outside tests.
func NewClient(httpClient *http.Client, baseURL, sitePath string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultGraphBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		listsURL:   fmt.Sprintf("%s/sites/%s/lists", baseURL, sitePath),
		log:        log,
	}
}

// ListItems fetches every item of the named list, fields expanded, following
// pagination links.
func (c *Client) ListItems(ctx context.Context, listName string) ([]Item, error) {
	endpoint := fmt.Sprintf("%s/%s/items?expand=fields", c.listsURL, url.PathEscape(listName))

	var all []Item
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		body, err := c.do(req, http.StatusOK)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", listName, err)
		}

		var page listItemsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding %s response: %w", listName, err)
		}
		all = append(all, page.Value...)
		endpoint = page.NextLink
	}

	c.log.Debug("listed items", slog.String("list", listName), slog.Int("count", len(all)))
	return all, nil
}

// CreateItem adds an item with the given fields and returns the stored item,
// including its server-assigned id.
func (c *Client) CreateItem(ctx context.Context, listName string, fields map[string]any) (Item, error) {
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return Item{}, fmt.Errorf("marshalling fields: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/items", c.listsURL, url.PathEscape(listName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Item{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, http.StatusCreated, http.StatusOK)
	if err != nil {
		return Item{}, fmt.Errorf("creating item in %s: %w", listName, err)
	}

	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return Item{}, fmt.Errorf("decoding created item: %w", err)
	}
	c.log.Debug("created item", slog.String("list", listName), slog.String("id", item.ID))
	return item, nil
}

// UpdateItem patches the fields of an existing item.
func (c *Client) UpdateItem(ctx context.Context, listName, itemID string, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/items/%s/fields", c.listsURL, url.PathEscape(listName), url.PathEscape(itemID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.do(req, http.StatusOK); err != nil {
		return fmt.Errorf("updating item %s in %s: %w", itemID, listName, err)
	}
	c.log.Debug("updated item", slog.String("list", listName), slog.String("id", itemID))
	return nil
}

// DeleteItem removes an item. Deleting an id that no longer exists returns
// ErrNotFound.
func (c *Client) DeleteItem(ctx context.Context, listName, itemID string) error {
	endpoint := fmt.Sprintf("%s/%s/items/%s", c.listsURL, url.PathEscape(listName), url.PathEscape(itemID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if _, err := c.do(req, http.StatusNoContent, http.StatusOK); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("deleting item %s from %s: %w", itemID, listName, err)
	}
	c.log.Debug("deleted item", slog.String("list", listName), slog.String("id", itemID))
	return nil
}

// do executes the request and returns the body when the status is one of ok;
// otherwise it returns a StatusError with a body excerpt.
func (c *Client) do(req *http.Request, ok ...int) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph API request failed: %w", err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	for _, status := range ok {
		if resp.StatusCode == status {
			return body, nil
		}
	}
	return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
