package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/localmate/localmate/internal/domain"
)

// ChatResult is the assistant's answer to one chat turn. Places carries any
// point-of-interest suggestions embedded in the reply, ready to be added to
// a plan.
type ChatResult struct {
	Reply  string
	Places []domain.Place
}

// AssistantAPI is the discovery surface of the backend: conversational
// place suggestions and plain text search.
type AssistantAPI interface {
	Chat(ctx context.Context, sessionID, message string) (*ChatResult, error)
	SearchPlaces(ctx context.Context, query string) ([]domain.Place, error)
}

var _ AssistantAPI = (*Client)(nil)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply  string         `json:"reply"`
	Places []domain.Place `json:"places"`
}

type searchResponse struct {
	Places []domain.Place `json:"places"`
}

func (c *Client) Chat(ctx context.Context, sessionID, message string) (*ChatResult, error) {
	var resp chatResponse
	err := c.do(ctx, "chat", http.MethodPost, "/assistant/chat",
		chatRequest{SessionID: sessionID, Message: message}, &resp)
	if err != nil {
		return nil, err
	}
	return &ChatResult{Reply: resp.Reply, Places: resp.Places}, nil
}

func (c *Client) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	var resp searchResponse
	err := c.do(ctx, "search_places", http.MethodGet, "/places/search?q="+url.QueryEscape(query),
		nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Places, nil
}
