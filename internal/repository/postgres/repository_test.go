package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/internal/repository/postgres"
	"github.com/mpalashb/secureprime-digital-agency/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTx migrates the test database and returns a transaction rolled back at cleanup.
// Tests are skipped when TEST_DATABASE_URL is not set.
func setupTx(t *testing.T) pgx.Tx {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, migrations.Up(sqlDB))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

func TestContactRepository_Create(t *testing.T) {
	tx := setupTx(t)
	repo := postgres.NewContactRepository(tx)

	c := &domain.Contact{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello"}
	require.NoError(t, repo.Create(context.Background(), c))

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	// Duplicate submissions are kept as separate rows
	again := &domain.Contact{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello"}
	require.NoError(t, repo.Create(context.Background(), again))
	assert.NotEqual(t, c.ID, again.ID)

	var count int
	err := tx.QueryRow(context.Background(), `SELECT count(*) FROM contacts WHERE id IN ($1, $2)`, c.ID, again.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestConsultationRepository_Create(t *testing.T) {
	tx := setupTx(t)
	repo := postgres.NewConsultationRepository(tx)

	req := &domain.ProjectInquiryRequest{
		FullName:           "A",
		Email:              "a@example.com",
		Phone:              "555",
		Service:            "web",
		ProjectDescription: "New storefront",
	}
	row := domain.NewProjectInquiry(req)
	require.NoError(t, repo.Create(context.Background(), row))

	var consultationType, formType string
	var company *string
	err := tx.QueryRow(context.Background(),
		`SELECT consultation_type, form_type, company FROM consultations WHERE id = $1`, row.ID,
	).Scan(&consultationType, &formType, &company)
	require.NoError(t, err)

	assert.Equal(t, domain.ConsultationTypeProjectInquiry, consultationType)
	assert.Equal(t, domain.FormTypeInquiry, formType)
	assert.Nil(t, company)
}
