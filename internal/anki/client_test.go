package anki

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a client wired to a fake AnkiConnect that
// dispatches on the action name.
func newTestServer(t *testing.T, handle func(action string, params json.RawMessage) (any, *string)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action  string          `json:"action"`
			Version int             `json:"version"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultVersion, req.Version)

		result, errMsg := handle(req.Action, req.Params)
		resp := map[string]any{"result": result, "error": errMsg}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return New(Options{URL: srv.URL})
}

func TestFindCards(t *testing.T) {
	client := newTestServer(t, func(action string, params json.RawMessage) (any, *string) {
		if action != "findCards" {
			t.Fatalf("unexpected action %q", action)
		}
		var p struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			t.Fatal(err)
		}
		if p.Query != `deck:"A::B"` {
			t.Errorf("query = %q, want %q", p.Query, `deck:"A::B"`)
		}
		return []int64{1, 2, 3}, nil
	})

	ids, err := client.FindCards(context.Background(), DeckQuery("A::B"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestFindCardsEmptyQuery(t *testing.T) {
	client := New(Options{})
	_, err := client.FindCards(context.Background(), "")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestInvokeSurfacesAPIError(t *testing.T) {
	msg := "collection is not available"
	client := newTestServer(t, func(string, json.RawMessage) (any, *string) {
		return nil, &msg
	})

	_, err := client.DeckNames(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "deckNames", apiErr.Action)
	assert.Contains(t, apiErr.Error(), msg)
}

func TestInvokeConnectivityFailure(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(Options{URL: url})
	_, err := client.GetTags(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failure must not be an APIError")
	assert.Contains(t, err.Error(), url)
}

func TestCardsInfo(t *testing.T) {
	client := newTestServer(t, func(action string, params json.RawMessage) (any, *string) {
		return []map[string]any{{
			"cardId":   int64(42),
			"note":     int64(7),
			"deckName": "Medicine::Immuno",
			"answer":   "<b>IgE</b>",
			"fields": map[string]any{
				"Front": map[string]any{"value": "antibody?", "order": 0},
				"Back":  map[string]any{"value": "<b>IgE</b>", "order": 1},
			},
			"tags": []string{"Immuno"},
		}}, nil
	})

	cards, err := client.CardsInfo(context.Background(), []int64{42})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, int64(42), cards[0].CardID)
	assert.Equal(t, "Medicine::Immuno", cards[0].DeckName)
	assert.Equal(t, 1, cards[0].Fields["Back"].Order)
	assert.Equal(t, []string{"Immuno"}, cards[0].Tags)
}

func TestRetrieveMediaFile(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}
	client := newTestServer(t, func(action string, params json.RawMessage) (any, *string) {
		var p struct {
			Filename string `json:"filename"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			t.Fatal(err)
		}
		if p.Filename == "missing.png" {
			return false, nil
		}
		return base64.StdEncoding.EncodeToString(payload), nil
	})

	data, err := client.RetrieveMediaFile(context.Background(), "diagram.png")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = client.RetrieveMediaFile(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestAddNotesRoundTrip(t *testing.T) {
	client := newTestServer(t, func(action string, params json.RawMessage) (any, *string) {
		var p struct {
			Notes []NewNote `json:"notes"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			t.Fatal(err)
		}
		if len(p.Notes) != 1 || !p.Notes[0].Options.AllowDuplicate {
			t.Errorf("unexpected addNotes payload: %+v", p.Notes)
		}
		return []int64{100}, nil
	})

	ids, err := client.AddNotes(context.Background(), []NewNote{{
		DeckName:  "Target",
		ModelName: "Basic",
		Fields:    map[string]string{"Front": "q", "Back": "a"},
		Options:   DuplicateOptions{AllowDuplicate: true, DuplicateScope: "deck"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []int64{100}, ids)
}
