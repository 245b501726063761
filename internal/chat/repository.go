package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/localmate/localmate/internal/domain"
)

// TranscriptRepo is the local cache for chat transcripts, keyed by
// (user, session).
type TranscriptRepo interface {
	CreateSession(ctx context.Context, s *domain.ChatSession) error
	GetSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]*domain.ChatSession, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error

	AppendMessage(ctx context.Context, userID string, m *domain.Message) error
	ListMessages(ctx context.Context, userID, sessionID string) ([]*domain.Message, error)
}

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored
// timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteTranscriptRepo implements TranscriptRepo using a SQLite database.
type SQLiteTranscriptRepo struct {
	db *sql.DB
}

// NewSQLiteTranscriptRepo creates a new SQLiteTranscriptRepo.
func NewSQLiteTranscriptRepo(db *sql.DB) *SQLiteTranscriptRepo {
	return &SQLiteTranscriptRepo{db: db}
}

var _ TranscriptRepo = (*SQLiteTranscriptRepo)(nil)

func (r *SQLiteTranscriptRepo) CreateSession(ctx context.Context, s *domain.ChatSession) error {
	query := `INSERT INTO chat_sessions (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Title,
		s.CreatedAt.Format(timeLayout),
		s.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting chat session: %w", err)
	}
	return nil
}

func (r *SQLiteTranscriptRepo) GetSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error) {
	query := `SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, sessionID, userID)
	return r.scanSession(row)
}

func (r *SQLiteTranscriptRepo) ListSessions(ctx context.Context, userID string) ([]*domain.ChatSession, error) {
	query := `SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions WHERE user_id = ? ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.ChatSession
	for rows.Next() {
		s, err := r.scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SQLiteTranscriptRepo) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE session_id = ? AND user_id = ?`, sessionID, userID); err != nil {
		return fmt.Errorf("deleting chat messages: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_sessions WHERE id = ? AND user_id = ?`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("deleting chat session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteTranscriptRepo) AppendMessage(ctx context.Context, userID string, m *domain.Message) error {
	query := `INSERT INTO chat_messages (id, session_id, user_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.SessionID,
		userID,
		string(m.Role),
		m.Content,
		m.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE id = ? AND user_id = ?`,
		m.CreatedAt.Format(timeLayout), m.SessionID, userID); err != nil {
		return fmt.Errorf("touching chat session: %w", err)
	}
	return nil
}

func (r *SQLiteTranscriptRepo) ListMessages(ctx context.Context, userID, sessionID string) ([]*domain.Message, error) {
	query := `SELECT id, session_id, role, content, created_at
		FROM chat_messages WHERE session_id = ? AND user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		var m domain.Message
		var role, createdAt string
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Role = domain.MessageRole(role)
		if m.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing message timestamp: %w", err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func (r *SQLiteTranscriptRepo) scanSession(row *sql.Row) (*domain.ChatSession, error) {
	var s domain.ChatSession
	var createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning chat session: %w", err)
	}
	return parseSessionTimes(&s, createdAt, updatedAt)
}

func (r *SQLiteTranscriptRepo) scanSessionRow(rows *sql.Rows) (*domain.ChatSession, error) {
	var s domain.ChatSession
	var createdAt, updatedAt string
	if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning chat session: %w", err)
	}
	return parseSessionTimes(&s, createdAt, updatedAt)
}

func parseSessionTimes(s *domain.ChatSession, createdAt, updatedAt string) (*domain.ChatSession, error) {
	var err error
	if s.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing session created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing session updated_at: %w", err)
	}
	return s, nil
}
