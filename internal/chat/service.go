package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localmate/localmate/internal/api"
	"github.com/localmate/localmate/internal/domain"
)

// Service drives one conversation with the assistant: it caches the
// transcript locally and forwards turns to the backend. The backend keeps
// its own conversational context keyed by session ID; the local cache
// exists only so transcripts survive restarts.
type Service struct {
	assistant api.AssistantAPI
	repo      TranscriptRepo
	userID    string
}

// NewService creates a chat Service for the given user.
func NewService(assistant api.AssistantAPI, repo TranscriptRepo, userID string) *Service {
	return &Service{assistant: assistant, repo: repo, userID: userID}
}

// StartSession creates a new local session record and returns it.
func (s *Service) StartSession(ctx context.Context, title string) (*domain.ChatSession, error) {
	now := time.Now().UTC()
	sess := &domain.ChatSession{
		ID:        uuid.New().String(),
		UserID:    s.userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ResumeSession returns the most recently used session, or a fresh one when
// none exists yet.
func (s *Service) ResumeSession(ctx context.Context) (*domain.ChatSession, error) {
	sessions, err := s.repo.ListSessions(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 0 {
		return sessions[0], nil
	}
	return s.StartSession(ctx, "")
}

// Send forwards one user turn to the assistant. The user message is cached
// before the call; the assistant reply is cached only on success, so a
// failed call leaves a transcript that honestly shows the unanswered turn.
func (s *Service) Send(ctx context.Context, sessionID, text string) (*api.ChatResult, error) {
	now := time.Now().UTC()
	userMsg := &domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: now,
	}
	if err := s.repo.AppendMessage(ctx, s.userID, userMsg); err != nil {
		return nil, fmt.Errorf("caching user message: %w", err)
	}

	res, err := s.assistant.Chat(ctx, sessionID, text)
	if err != nil {
		return nil, err
	}

	reply := &domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   res.Reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, s.userID, reply); err != nil {
		return nil, fmt.Errorf("caching assistant reply: %w", err)
	}
	return res, nil
}

// Transcript returns the cached messages of a session in order.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	return s.repo.ListMessages(ctx, s.userID, sessionID)
}
