package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/taxwiser/internal/knowledge"
	"github.com/mmynk/taxwiser/internal/metrics"
	"github.com/mmynk/taxwiser/internal/middleware"
	"github.com/mmynk/taxwiser/internal/presenter"
	"github.com/mmynk/taxwiser/internal/rpc"
)

// AssistantService answers help questions. It does not need a session;
// signed-in filers are greeted by name.
type AssistantService struct {
	base    *knowledge.Base
	metrics *metrics.Metrics
}

var _ rpc.AssistantServiceHandler = (*AssistantService)(nil)

// NewAssistantService creates an assistant over a knowledge base.
func NewAssistantService(base *knowledge.Base, m *metrics.Metrics) *AssistantService {
	return &AssistantService{base: base, metrics: m}
}

// Ask answers a free-form question.
func (s *AssistantService) Ask(ctx context.Context, req *connect.Request[rpc.AskRequest]) (*connect.Response[rpc.AskResponse], error) {
	question := strings.TrimSpace(req.Msg.Question)
	if question == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("question is required"))
	}

	reply := s.base.Answer(question)
	if reply.Kind == knowledge.KindGreeting {
		reply.Text = knowledge.Greeting(middleware.GetName(ctx))
	}
	s.metrics.AssistantReply(string(reply.Kind))
	slog.Debug("Assistant reply", "kind", reply.Kind, "topic", reply.Topic, "score", reply.Score)

	html, err := presenter.HTML(reply.Text)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&rpc.AskResponse{
		Answer:     reply.Text,
		AnswerHTML: html,
		Kind:       string(reply.Kind),
		Topic:      reply.Topic,
	}), nil
}

// Search finds help articles containing the query.
func (s *AssistantService) Search(ctx context.Context, req *connect.Request[rpc.SearchRequest]) (*connect.Response[rpc.SearchResponse], error) {
	results, ok := s.base.Search(req.Msg.Query)
	resp := &rpc.SearchResponse{Articles: make([]rpc.Article, 0, len(results))}
	switch {
	case !ok:
		resp.Message = fmt.Sprintf("Enter at least %d characters to search.", knowledge.MinQueryLength)
	case len(results) == 0:
		resp.Message = fmt.Sprintf("No articles found for %q.", strings.TrimSpace(req.Msg.Query))
	}
	for _, a := range results {
		resp.Articles = append(resp.Articles, rpc.Article{Title: a.Title, Content: a.Content})
	}
	return connect.NewResponse(resp), nil
}
