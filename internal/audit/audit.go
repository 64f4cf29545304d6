// Package audit keeps the service's own queryable log of moderation
// decisions in SQLite. Callers persist results alongside their ad records;
// this log exists for the review queue and for the resubmission detector.
package audit

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tarekm/adsift/internal/logging"
	"github.com/tarekm/adsift/internal/moderation"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrDecisionNotFound is returned by Get for unknown decision ids.
var ErrDecisionNotFound = errors.New("decision not found")

// Entry is one recorded moderation decision.
type Entry struct {
	ID              string              `json:"id"`
	Category        moderation.Category `json:"category"`
	Title           string              `json:"title"`
	Price           float64             `json:"price"`
	Score           float64             `json:"score"`
	Decision        moderation.Decision `json:"decision"`
	RequiresReview  bool                `json:"requires_review"`
	Monitored       bool                `json:"monitored"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	RulesVersion    string              `json:"rules_version,omitempty"`
	Flags           []moderation.Flag   `json:"flags,omitempty"`
	ResubmissionOf  string              `json:"resubmission_of,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// RejectedText is the comparison material for the resubmission detector.
type RejectedText struct {
	ID   string
	Text string
}

// Store is the SQLite-backed decision log.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// NewStore wires a Store over db and applies the embedded schema.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Record persists one decision and returns its generated id. resubmissionOf
// is the prior decision id when the submission was escalated as a near
// duplicate, empty otherwise.
func (s *Store) Record(ctx context.Context, sub *moderation.Submission, res *moderation.Result, resubmissionOf string) (*Entry, error) {
	flagsJSON, err := json.Marshal(res.Flags)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to marshal flags", logging.Field{Key: "err", Value: err})
		}
		flagsJSON = []byte("[]")
	}

	e := &Entry{
		ID:              uuid.New().String(),
		Category:        sub.Category,
		Title:           sub.Title,
		Price:           sub.Price,
		Score:           res.Score,
		Decision:        res.Decision,
		RequiresReview:  res.RequiresReview,
		Monitored:       res.Monitored,
		RejectionReason: res.RejectionReason,
		RulesVersion:    res.RulesVersion,
		Flags:           res.Flags,
		ResubmissionOf:  resubmissionOf,
		CreatedAt:       time.Now().UTC(),
	}

	combined := moderation.CombinedText(sub.Title, sub.Description)
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions
		  (id, category, title, combined_text, price, score, decision, requires_review, monitored, rejection_reason, rules_version, flags, resubmission_of, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Category), e.Title, combined, e.Price, e.Score, string(e.Decision),
		boolToInt(e.RequiresReview), boolToInt(e.Monitored), e.RejectionReason,
		e.RulesVersion, string(flagsJSON), e.ResubmissionOf, e.CreatedAt.Unix()); err != nil {
		return nil, fmt.Errorf("insert decision: %w", err)
	}

	return e, nil
}

// Get returns one recorded decision or ErrDecisionNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category, title, price, score, decision, requires_review, monitored, rejection_reason, rules_version, flags, resubmission_of, created_at
		FROM decisions WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDecisionNotFound
	}
	return e, err
}

// List returns recent decisions, newest first, optionally filtered by
// decision outcome and category. limit <= 0 means a default of 100.
func (s *Store) List(ctx context.Context, decision string, category string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	q := `SELECT id, category, title, price, score, decision, requires_review, monitored, rejection_reason, rules_version, flags, resubmission_of, created_at
	      FROM decisions WHERE 1=1`
	args := []any{}
	if decision != "" {
		q += " AND decision = ?"
		args = append(args, decision)
	}
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	q += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentRejected returns the normalized text of the latest rejected ads in
// a category, newest first, for similarity comparison.
func (s *Store) RecentRejected(ctx context.Context, category moderation.Category, limit int) ([]RejectedText, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, combined_text FROM decisions
		WHERE decision = ? AND category = ?
		ORDER BY created_at DESC, id LIMIT ?
	`, string(moderation.DecisionRejected), string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("recent rejected: %w", err)
	}
	defer rows.Close()

	var out []RejectedText
	for rows.Next() {
		var rt RejectedText
		if err := rows.Scan(&rt.ID, &rt.Text); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Stats returns decision counts per outcome for the review dashboard.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT decision, COUNT(*) FROM decisions GROUP BY decision`)
	if err != nil {
		return nil, fmt.Errorf("decision stats: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var d string
		var n int
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		out[d] = n
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (*Entry, error) {
	var e Entry
	var cat, dec, flagsJSON string
	var review, monitored int
	var createdAt int64
	if err := r.Scan(&e.ID, &cat, &e.Title, &e.Price, &e.Score, &dec, &review, &monitored,
		&e.RejectionReason, &e.RulesVersion, &flagsJSON, &e.ResubmissionOf, &createdAt); err != nil {
		return nil, err
	}
	e.Category = moderation.Category(cat)
	e.Decision = moderation.Decision(dec)
	e.RequiresReview = review != 0
	e.Monitored = monitored != 0
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(flagsJSON), &e.Flags); err != nil {
		// A corrupt flags column should not make the whole row unreadable.
		e.Flags = nil
	}
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
