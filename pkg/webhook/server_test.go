package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

func postInteraction(t *testing.T, srv *Server, token string, req interactionRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) interactionResponse {
	t.Helper()
	var resp interactionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// TestInteractionEditResponse tests that a handler editing the origin
// message produces an "edit" response with the payload.
func TestInteractionEditResponse(t *testing.T) {
	srv := NewServer(Config{})
	srv.RegisterInteractionHandler("sess", []string{"next"}, func(ctx context.Context, ic messenger.InteractionCtx) error {
		if err := ic.Defer(ctx); err != nil {
			return err
		}
		return ic.EditOrigin(ctx, &message.Payload{Content: "page 2"})
	})

	w := postInteraction(t, srv, "", interactionRequest{
		InteractionID: "i1",
		CustomID:      "sess|next",
		User:          messenger.User{ID: "u1"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Type != "edit" || resp.Payload == nil || resp.Payload.Content != "page 2" {
		t.Errorf("response = %+v, want edit of page 2", resp)
	}
}

// TestInteractionEphemeralResponse tests the ephemeral reply path used
// for wrong-user rejections.
func TestInteractionEphemeralResponse(t *testing.T) {
	srv := NewServer(Config{})
	srv.RegisterInteractionHandler("sess", []string{"next"}, func(ctx context.Context, ic messenger.InteractionCtx) error {
		return ic.Ephemeral(ctx, "not for you")
	})

	w := postInteraction(t, srv, "", interactionRequest{CustomID: "sess|next"})
	resp := decodeResponse(t, w)
	if resp.Type != "ephemeral" || resp.Content != "not for you" {
		t.Errorf("response = %+v, want ephemeral", resp)
	}
}

// TestInteractionDeferOnly tests that a handler that only defers gets a
// defer response, as does one that never responds.
func TestInteractionDeferOnly(t *testing.T) {
	srv := NewServer(Config{})
	srv.RegisterInteractionHandler("sess", []string{"back", "next"}, func(ctx context.Context, ic messenger.InteractionCtx) error {
		if _, role, _ := message.SplitCustomID(ic.CustomID()); role == "back" {
			return ic.Defer(ctx)
		}
		return nil
	})

	for _, role := range []string{"back", "next"} {
		w := postInteraction(t, srv, "", interactionRequest{CustomID: "sess|" + role})
		if resp := decodeResponse(t, w); resp.Type != "defer" {
			t.Errorf("role %s: response type = %q, want defer", role, resp.Type)
		}
	}
}

// TestBearerTokenRequired tests that a configured token gates the
// endpoint.
func TestBearerTokenRequired(t *testing.T) {
	srv := NewServer(Config{Token: "sekrit"})

	if w := postInteraction(t, srv, "", interactionRequest{CustomID: "sess|next"}); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", w.Code)
	}
	if w := postInteraction(t, srv, "wrong", interactionRequest{CustomID: "sess|next"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", w.Code)
	}
	// Correct token reaches dispatch; no session registered, so 404.
	if w := postInteraction(t, srv, "sekrit", interactionRequest{CustomID: "sess|next"}); w.Code != http.StatusNotFound {
		t.Errorf("good token: status = %d, want 404", w.Code)
	}
}

// TestUnknownSessionIs404 tests dispatch failures map to HTTP statuses.
func TestUnknownSessionIs404(t *testing.T) {
	srv := NewServer(Config{})

	if w := postInteraction(t, srv, "", interactionRequest{CustomID: "ghost|next"}); w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want 404", w.Code)
	}
	if w := postInteraction(t, srv, "", interactionRequest{CustomID: "no-separator"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad custom id: status = %d, want 400", w.Code)
	}
}

// TestHandlerErrorIs500 tests that handler failures surface as 500.
func TestHandlerErrorIs500(t *testing.T) {
	srv := NewServer(Config{})
	srv.RegisterInteractionHandler("sess", []string{"next"}, func(context.Context, messenger.InteractionCtx) error {
		return errors.New("boom")
	})

	if w := postInteraction(t, srv, "", interactionRequest{CustomID: "sess|next"}); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

// TestMalformedBodyIs400 tests JSON decode failures.
func TestMalformedBodyIs400(t *testing.T) {
	srv := NewServer(Config{})
	r := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader([]byte("{nope")))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// TestSharedDispatcher tests that a server can route through an
// externally owned dispatcher.
func TestSharedDispatcher(t *testing.T) {
	d := messenger.NewDispatcher(nil)
	srv := NewServer(Config{Dispatcher: d})

	called := false
	d.RegisterInteractionHandler("sess", []string{"last"}, func(ctx context.Context, ic messenger.InteractionCtx) error {
		called = true
		return ic.Defer(ctx)
	})

	if w := postInteraction(t, srv, "", interactionRequest{CustomID: "sess|last"}); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !called {
		t.Error("handler on shared dispatcher never ran")
	}
}
