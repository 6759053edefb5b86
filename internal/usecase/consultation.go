package usecase

import (
	"context"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/email"
)

type consultationUsecase struct {
	consultation *pipeline[domain.ConsultationRequest, domain.Consultation]
	inquiry      *pipeline[domain.ProjectInquiryRequest, domain.Consultation]
}

// NewConsultationUsecase serves the consultation booking and project inquiry forms, both stored in consultations
func NewConsultationUsecase(repo domain.ConsultationRepository, deps IntakeDeps) domain.ConsultationUsecase {
	compose := func(c *domain.Consultation) ([]email.Message, error) {
		return consultationMessages(deps.Brand, deps.StaffEmail, c)
	}
	success := func(c *domain.Consultation) string {
		if c.IsConsultation() {
			return "Consultation request submitted successfully"
		}
		return "Project inquiry submitted successfully"
	}

	return &consultationUsecase{
		consultation: &pipeline[domain.ConsultationRequest, domain.Consultation]{
			form:        domain.FormConsultation,
			failure:     "Failed to submit consultation request",
			validate:    deps.Validate,
			notifier:    deps.Notifier,
			idempotency: deps.Idempotency,
			normalize:   (*domain.ConsultationRequest).Normalize,
			build:       domain.NewConsultation,
			create:      repo.Create,
			compose:     compose,
			success:     success,
		},
		inquiry: &pipeline[domain.ProjectInquiryRequest, domain.Consultation]{
			form:        domain.FormProjectInquiry,
			failure:     "Failed to submit project inquiry",
			validate:    deps.Validate,
			notifier:    deps.Notifier,
			idempotency: deps.Idempotency,
			normalize:   (*domain.ProjectInquiryRequest).Normalize,
			build:       domain.NewProjectInquiry,
			create:      repo.Create,
			compose:     compose,
			success:     success,
		},
	}
}

func (uc *consultationUsecase) SubmitConsultation(ctx context.Context, req *domain.ConsultationRequest) (*domain.Receipt[domain.Consultation], error) {
	return uc.consultation.run(ctx, req)
}

func (uc *consultationUsecase) SubmitProjectInquiry(ctx context.Context, req *domain.ProjectInquiryRequest) (*domain.Receipt[domain.Consultation], error) {
	return uc.inquiry.run(ctx, req)
}
