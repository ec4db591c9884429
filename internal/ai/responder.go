// Package ai answers natural-language questions about the portfolio,
// either through the backend's AI endpoint or directly through Gemini.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/portfolio-term/internal/api"
	"github.com/nhle/portfolio-term/internal/model"
)

// Responder answers one visitor question.
type Responder interface {
	Ask(ctx context.Context, message string) (model.AIReply, error)
}

// RemoteResponder forwards questions to the backend's /api/ai endpoint.
type RemoteResponder struct {
	client *api.Client
}

// NewRemoteResponder creates a responder backed by client.
func NewRemoteResponder(client *api.Client) *RemoteResponder {
	return &RemoteResponder{client: client}
}

type askRequest struct {
	Message string `json:"message"`
}

// Ask posts the question. A rate-limited answer carries a regular reply
// body (usually with Remaining set to 0) and is returned as a success.
func (r *RemoteResponder) Ask(ctx context.Context, message string) (model.AIReply, error) {
	var reply model.AIReply
	err := r.client.Post(ctx, api.AIPath, askRequest{Message: message}, &reply)
	if err != nil && !errors.Is(err, api.ErrRateLimited) {
		return model.AIReply{}, fmt.Errorf("asking ai: %w", err)
	}
	return reply, nil
}
