package postgres

import (
	"context"
	"fmt"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type contactRepo struct {
	db Querier
}

// NewContactRepository creates a new insert-only contacts repository
func NewContactRepository(db Querier) domain.ContactRepository {
	return &contactRepo{db: db}
}

// Create inserts one contacts row and fills ID and CreatedAt
func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}

	query := `
		INSERT INTO contacts (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Message,
	).Scan(&contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}
