package postgres

import (
	"context"
	"fmt"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"

	"github.com/google/uuid"
)

type consultationRepo struct {
	db Querier
}

// NewConsultationRepository creates a new insert-only consultations repository
func NewConsultationRepository(db Querier) domain.ConsultationRepository {
	return &consultationRepo{db: db}
}

// Create inserts one consultations row (booking or inquiry) and fills ID and CreatedAt
func (r *consultationRepo) Create(ctx context.Context, c *domain.Consultation) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query := `
		INSERT INTO consultations (
			id, full_name, email, company, phone, service, consultation_type,
			preferred_date, preferred_time, project_description, project_budget,
			project_timeline, contact_method, additional_information, form_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.FullName, c.Email, c.Company, c.Phone, c.Service, c.ConsultationType,
		c.PreferredDate, c.PreferredTime, c.ProjectDescription, c.ProjectBudget,
		c.ProjectTimeline, c.ContactMethod, c.AdditionalInformation, c.FormType,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}
	return nil
}
