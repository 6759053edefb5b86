package usecase

import (
	"context"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/email"
)

type contactUsecase struct {
	pipeline *pipeline[domain.ContactRequest, domain.Contact]
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(repo domain.ContactRepository, deps IntakeDeps) domain.ContactUsecase {
	return &contactUsecase{
		pipeline: &pipeline[domain.ContactRequest, domain.Contact]{
			form:        domain.FormContact,
			failure:     "Failed to submit contact form",
			validate:    deps.Validate,
			notifier:    deps.Notifier,
			idempotency: deps.Idempotency,
			normalize:   (*domain.ContactRequest).Normalize,
			build:       domain.NewContact,
			create:      repo.Create,
			compose: func(c *domain.Contact) ([]email.Message, error) {
				return contactMessages(deps.Brand, deps.StaffEmail, c)
			},
			success: func(*domain.Contact) string {
				return "Contact form submitted successfully"
			},
		},
	}
}

// Submit validates the request, stores it and queues the thank-you email
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.Receipt[domain.Contact], error) {
	return uc.pipeline.run(ctx, req)
}
