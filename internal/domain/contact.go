package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,max=255,coarse_email"`
	Message       string `json:"message" validate:"required,max=1000"`
	TermsAccepted *bool  `json:"terms_accepted,omitempty" validate:"omitempty,accepted"`
}

// Normalize trims surrounding whitespace from every text field
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

// Contact is one persisted row of the contacts table
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContact builds the row for an accepted request
func NewContact(req *ContactRequest) *Contact {
	return &Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
}

// ContactRepository is insert-only
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates, stores and acknowledges a contact form message
	Submit(ctx context.Context, req *ContactRequest) (*Receipt[Contact], error)
}
