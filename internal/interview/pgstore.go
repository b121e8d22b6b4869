package interview

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/db"
)

// PGStore persists interviews in Postgres. Answers are stored as jsonb,
// mirroring the interviews table created by the keystone migration.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, role string) (*Interview, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO interviews (role, answers)
		VALUES ($1, '[]'::jsonb)
		RETURNING id, role, answers, score, feedback,
		          tab_switches, duration, completed, completed_at, created_at
	`, role)

	return scanInterview(row)
}

func (s *PGStore) Get(ctx context.Context, id string) (*Interview, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, role, answers, score, feedback,
		       tab_switches, duration, completed, completed_at, created_at
		FROM interviews
		WHERE id = $1
	`, id)

	iv, err := scanInterview(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return iv, err
}

func (s *PGStore) Update(ctx context.Context, id string, p Patch) (*Interview, error) {
	if len(p.Answers) > QuestionCount {
		return nil, ErrTooManyAnswers
	}

	var clauses []string
	args := []any{id}

	add := func(col string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Answers != nil {
		data, err := json.Marshal(p.Answers)
		if err != nil {
			return nil, fmt.Errorf("interview: marshal answers: %w", err)
		}
		add("answers", data)
	}
	if p.Score != nil {
		add("score", *p.Score)
	}
	if p.Feedback != nil {
		add("feedback", *p.Feedback)
	}
	if p.TabSwitches != nil {
		add("tab_switches", *p.TabSwitches)
	}
	if p.Duration != nil {
		add("duration", *p.Duration)
	}
	if p.Completed != nil && *p.Completed {
		add("completed", true)
		clauses = append(clauses, "completed_at = NOW()")
	}

	if len(clauses) == 0 {
		return s.Get(ctx, id)
	}

	// Completed rows are read-only: the WHERE clause refuses the write and
	// the current row is returned instead, which also makes the completing
	// transition at-most-once at the storage level.
	row := s.db.QueryRowContext(ctx, `
		UPDATE interviews
		SET `+strings.Join(clauses, ", ")+`
		WHERE id = $1 AND completed = false
		RETURNING id, role, answers, score, feedback,
		          tab_switches, duration, completed, completed_at, created_at
	`, args...)

	iv, err := scanInterview(row)
	if err == sql.ErrNoRows {
		return s.Get(ctx, id)
	}
	return iv, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (*Interview, error) {
	var (
		iv      Interview
		answers []byte
	)

	err := row.Scan(
		&iv.ID, &iv.Role, &answers, &iv.Score, &iv.Feedback,
		&iv.TabSwitches, &iv.Duration, &iv.Completed, &iv.CompletedAt, &iv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(answers, &iv.Answers); err != nil {
		return nil, fmt.Errorf("interview: unmarshal answers: %w", err)
	}
	if iv.Answers == nil {
		iv.Answers = []Answer{}
	}

	return &iv, nil
}
