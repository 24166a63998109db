package anki

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultURL is the endpoint the AnkiConnect add-on listens on.
const DefaultURL = "http://127.0.0.1:8765"

// DefaultVersion is the AnkiConnect protocol version this client speaks.
const DefaultVersion = 6

// Options configures a Client.
type Options struct {
	URL        string
	Version    int
	Timeout    time.Duration
	MediaRate  rate.Limit // media downloads per second
	MediaBurst int
}

// Client talks to a local AnkiConnect endpoint. All calls are synchronous
// JSON POSTs carrying an {action, version, params} envelope.
type Client struct {
	BaseURL    string
	Version    int
	HTTPClient *http.Client

	media *rate.Limiter
}

// New creates a Client. Zero-valued options fall back to defaults.
func New(o Options) *Client {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Version == 0 {
		o.Version = DefaultVersion
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.MediaRate == 0 {
		o.MediaRate = rate.Inf
	}
	if o.MediaBurst == 0 {
		o.MediaBurst = 1
	}
	return &Client{
		BaseURL:    o.URL,
		Version:    o.Version,
		HTTPClient: &http.Client{Timeout: o.Timeout},
		media:      rate.NewLimiter(o.MediaRate, o.MediaBurst),
	}
}

type rpcRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one AnkiConnect request and decodes its result into out.
// A nil out discards the result.
func (c *Client) invoke(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(rpcRequest{Action: action, Version: c.Version, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("anki-connect at %s unreachable: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("anki-connect %s: unexpected status %d", action, resp.StatusCode)
	}

	var env rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	if env.Error != nil {
		return &APIError{Action: action, Message: *env.Error}
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", action, err)
		}
	}
	return nil
}

// DeckNames returns every deck and subdeck name.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.invoke(ctx, "deckNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// GetTags returns every tag in the collection.
func (c *Client) GetTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.invoke(ctx, "getTags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// FindCards returns the IDs of cards matching an Anki search query.
// The query syntax is Anki's own and is passed through verbatim.
func (c *Client) FindCards(ctx context.Context, query string) ([]int64, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	var ids []int64
	if err := c.invoke(ctx, "findCards", map[string]string{"query": query}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CardsInfo returns full card records for the given card IDs.
func (c *Client) CardsInfo(ctx context.Context, cardIDs []int64) ([]*Card, error) {
	var cards []*Card
	if err := c.invoke(ctx, "cardsInfo", map[string]any{"cards": cardIDs}, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CardsToNotes maps card IDs to the IDs of their underlying notes.
// The result preserves order and may contain duplicates when several
// cards share a note.
func (c *Client) CardsToNotes(ctx context.Context, cardIDs []int64) ([]int64, error) {
	var ids []int64
	if err := c.invoke(ctx, "cardsToNotes", map[string]any{"cards": cardIDs}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// NotesInfo returns full note records for the given note IDs.
func (c *Client) NotesInfo(ctx context.Context, noteIDs []int64) ([]*Note, error) {
	var notes []*Note
	if err := c.invoke(ctx, "notesInfo", map[string]any{"notes": noteIDs}, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ModelFieldNames returns the ordered field names of a note type.
func (c *Client) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	var fields []string
	if err := c.invoke(ctx, "modelFieldNames", map[string]string{"modelName": modelName}, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// CreateDeck creates a deck (and any missing parents in its path).
// Creating an existing deck is not an error on the Anki side.
func (c *Client) CreateDeck(ctx context.Context, name string) error {
	return c.invoke(ctx, "createDeck", map[string]string{"deck": name}, nil)
}

// AddNotes adds the given notes and returns the new note IDs. Anki
// reports a null ID for any note it rejected.
func (c *Client) AddNotes(ctx context.Context, notes []NewNote) ([]int64, error) {
	var ids []int64
	if err := c.invoke(ctx, "addNotes", map[string]any{"notes": notes}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// RetrieveMediaFile fetches one file from the media collection and
// returns its raw bytes. Calls are paced by the client's media limiter
// so bulk exports do not hammer the local API.
func (c *Client) RetrieveMediaFile(ctx context.Context, filename string) ([]byte, error) {
	if err := c.media.Wait(ctx); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.invoke(ctx, "retrieveMediaFile", map[string]string{"filename": filename}, &raw); err != nil {
		return nil, err
	}
	// AnkiConnect signals a missing file with a literal false result.
	if len(raw) == 0 || string(raw) == "false" {
		return nil, fmt.Errorf("%q: %w", filename, ErrMediaNotFound)
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("decode retrieveMediaFile result: %w", err)
	}
	if encoded == "" {
		return nil, fmt.Errorf("%q: %w", filename, ErrMediaNotFound)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode media %q: %w", filename, err)
	}
	return data, nil
}
