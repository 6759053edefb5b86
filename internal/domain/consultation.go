package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Form type constants stored in consultations.form_type
const (
	FormTypeConsultation = "consultation"
	FormTypeInquiry      = "inquiry"
)

// ConsultationTypeProjectInquiry marks consultation rows created by the project inquiry form
const ConsultationTypeProjectInquiry = "project_inquiry"

// ConsultationRequest is the body of the consultation booking form.
// With form_type "inquiry" it carries a project inquiry instead, and
// project_description replaces consultation_type as the required field.
type ConsultationRequest struct {
	FullName              string `json:"full_name" validate:"required,max=100"`
	Email                 string `json:"email" validate:"required,max=255,coarse_email"`
	Company               string `json:"company" validate:"max=100"`
	Phone                 string `json:"phone" validate:"required,max=20"`
	Service               string `json:"service" validate:"required,max=100"`
	ConsultationType      string `json:"consultation_type" validate:"required_unless=FormType inquiry,max=100"`
	PreferredDate         string `json:"preferred_date" validate:"max=100"`
	PreferredTime         string `json:"preferred_time" validate:"max=100"`
	ProjectDescription    string `json:"project_description" validate:"required_if=FormType inquiry,max=2000"`
	ProjectBudget         string `json:"project_budget" validate:"max=100"`
	ProjectTimeline       string `json:"project_timeline" validate:"max=100"`
	ContactMethod         string `json:"contact_method" validate:"max=100"`
	AdditionalInformation string `json:"additional_information" validate:"max=500"`
	FormType              string `json:"form_type" validate:"oneof=consultation inquiry"`
	TermsAccepted         *bool  `json:"terms_accepted,omitempty" validate:"omitempty,accepted"`
}

// Normalize trims every text field and defaults form_type to consultation
func (r *ConsultationRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.ConsultationType = strings.TrimSpace(r.ConsultationType)
	r.PreferredDate = strings.TrimSpace(r.PreferredDate)
	r.PreferredTime = strings.TrimSpace(r.PreferredTime)
	r.ProjectDescription = strings.TrimSpace(r.ProjectDescription)
	r.ProjectBudget = strings.TrimSpace(r.ProjectBudget)
	r.ProjectTimeline = strings.TrimSpace(r.ProjectTimeline)
	r.ContactMethod = strings.TrimSpace(r.ContactMethod)
	r.AdditionalInformation = strings.TrimSpace(r.AdditionalInformation)
	r.FormType = strings.ToLower(strings.TrimSpace(r.FormType))
	if r.FormType == "" {
		r.FormType = FormTypeConsultation
	}
}

// ProjectInquiryRequest is the body of the dedicated project inquiry form
type ProjectInquiryRequest struct {
	FullName              string `json:"full_name" validate:"required,max=100"`
	Email                 string `json:"email" validate:"required,max=255,coarse_email"`
	Company               string `json:"company" validate:"max=100"`
	Phone                 string `json:"phone" validate:"required,max=20"`
	Service               string `json:"service" validate:"required,max=100"`
	ProjectDescription    string `json:"project_description" validate:"required,max=2000"`
	ProjectBudget         string `json:"project_budget" validate:"max=100"`
	ProjectTimeline       string `json:"project_timeline" validate:"max=100"`
	ContactMethod         string `json:"contact_method" validate:"max=100"`
	AdditionalInformation string `json:"additional_information" validate:"max=500"`
	TermsAccepted         *bool  `json:"terms_accepted,omitempty" validate:"omitempty,accepted"`
}

// Normalize trims every text field
func (r *ProjectInquiryRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.ProjectDescription = strings.TrimSpace(r.ProjectDescription)
	r.ProjectBudget = strings.TrimSpace(r.ProjectBudget)
	r.ProjectTimeline = strings.TrimSpace(r.ProjectTimeline)
	r.ContactMethod = strings.TrimSpace(r.ContactMethod)
	r.AdditionalInformation = strings.TrimSpace(r.AdditionalInformation)
}

// Consultation is one persisted row of the consultations table, shared by
// consultation bookings and project inquiries
type Consultation struct {
	ID                    uuid.UUID `json:"id"`
	FullName              string    `json:"full_name"`
	Email                 string    `json:"email"`
	Company               *string   `json:"company"`
	Phone                 string    `json:"phone"`
	Service               string    `json:"service"`
	ConsultationType      string    `json:"consultation_type"`
	PreferredDate         *string   `json:"preferred_date"`
	PreferredTime         *string   `json:"preferred_time"`
	ProjectDescription    *string   `json:"project_description"`
	ProjectBudget         *string   `json:"project_budget"`
	ProjectTimeline       *string   `json:"project_timeline"`
	ContactMethod         *string   `json:"contact_method"`
	AdditionalInformation *string   `json:"additional_information"`
	FormType              string    `json:"form_type"`
	CreatedAt             time.Time `json:"created_at"`
}

// IsConsultation reports whether the row is a consultation booking rather than an inquiry
func (c *Consultation) IsConsultation() bool {
	return c.FormType != FormTypeInquiry
}

// NewConsultation builds the row for an accepted consultation request.
// Inquiries sent without a consultation type get the project inquiry marker.
func NewConsultation(req *ConsultationRequest) *Consultation {
	consultationType := req.ConsultationType
	if consultationType == "" && req.FormType == FormTypeInquiry {
		consultationType = ConsultationTypeProjectInquiry
	}
	return &Consultation{
		FullName:              req.FullName,
		Email:                 req.Email,
		Company:               optional(req.Company),
		Phone:                 req.Phone,
		Service:               req.Service,
		ConsultationType:      consultationType,
		PreferredDate:         optional(req.PreferredDate),
		PreferredTime:         optional(req.PreferredTime),
		ProjectDescription:    optional(req.ProjectDescription),
		ProjectBudget:         optional(req.ProjectBudget),
		ProjectTimeline:       optional(req.ProjectTimeline),
		ContactMethod:         optional(req.ContactMethod),
		AdditionalInformation: optional(req.AdditionalInformation),
		FormType:              req.FormType,
	}
}

// NewProjectInquiry builds the consultations row for a project inquiry
func NewProjectInquiry(req *ProjectInquiryRequest) *Consultation {
	return &Consultation{
		FullName:              req.FullName,
		Email:                 req.Email,
		Company:               optional(req.Company),
		Phone:                 req.Phone,
		Service:               req.Service,
		ConsultationType:      ConsultationTypeProjectInquiry,
		ProjectDescription:    optional(req.ProjectDescription),
		ProjectBudget:         optional(req.ProjectBudget),
		ProjectTimeline:       optional(req.ProjectTimeline),
		ContactMethod:         optional(req.ContactMethod),
		AdditionalInformation: optional(req.AdditionalInformation),
		FormType:              FormTypeInquiry,
	}
}

// optional maps an empty string to NULL
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ConsultationRepository is insert-only
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *Consultation) error
}

// ConsultationUsecase handles both consultation bookings and project inquiries
type ConsultationUsecase interface {
	SubmitConsultation(ctx context.Context, req *ConsultationRequest) (*Receipt[Consultation], error)
	SubmitProjectInquiry(ctx context.Context, req *ProjectInquiryRequest) (*Receipt[Consultation], error)
}
