package validation_test

import (
	"strings"
	"testing"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"jane@example.com", "a.b+c@sub.example.co", "x@y.z"}
	invalid := []string{"", "bad-email", "jane@example", "@example.com", "jane@.com", "ja ne@example.com", "jane@@example.com"}

	for _, s := range valid {
		assert.True(t, validation.IsEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, validation.IsEmail(s), s)
	}
}

func TestContactRequestRules(t *testing.T) {
	v := validation.New()

	t.Run("accepts a well formed request", func(t *testing.T) {
		req := &domain.ContactRequest{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello"}
		assert.NoError(t, v.Struct(req))
	})

	t.Run("lists every missing field in one message", func(t *testing.T) {
		req := &domain.ContactRequest{Email: "jane@example.com"}
		err := v.Struct(req)
		require.Error(t, err)

		res := validation.Summarize(err)
		assert.Equal(t, "Missing required fields: name, message", res.Message)
		assert.Equal(t, "Name is required", res.Fields["name"])
		assert.Equal(t, "Message is required", res.Fields["message"])
	})

	t.Run("whitespace only counts as missing after normalize", func(t *testing.T) {
		req := &domain.ContactRequest{Name: "   ", Email: "jane@example.com", Message: "Hello"}
		req.Normalize()
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "Missing required fields: name", res.Message)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := &domain.ContactRequest{Name: "Jane", Email: "bad-email", Message: "Hello"}
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "Invalid email format", res.Message)
		assert.Equal(t, "Invalid email address", res.Fields["email"])
	})

	t.Run("enforces length caps", func(t *testing.T) {
		req := &domain.ContactRequest{Name: strings.Repeat("a", 101), Email: "jane@example.com", Message: "Hello"}
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "Name must be at most 100 characters", res.Message)
	})

	t.Run("terms must be accepted when sent", func(t *testing.T) {
		declined := false
		req := &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "Hello", TermsAccepted: &declined}
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "You must accept the terms and conditions", res.Fields["terms_accepted"])

		accepted := true
		req.TermsAccepted = &accepted
		assert.NoError(t, v.Struct(req))
	})
}

func TestConsultationRequestRules(t *testing.T) {
	v := validation.New()

	base := func() *domain.ConsultationRequest {
		return &domain.ConsultationRequest{
			FullName:         "A",
			Email:            "a@example.com",
			Phone:            "555",
			Service:          "seo",
			ConsultationType: "video-call",
		}
	}

	t.Run("consultation requires consultation_type", func(t *testing.T) {
		req := base()
		req.ConsultationType = ""
		req.Normalize()
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "Missing required fields: consultation_type", res.Message)
	})

	t.Run("inquiry requires project_description instead", func(t *testing.T) {
		req := base()
		req.ConsultationType = ""
		req.FormType = "inquiry"
		req.Normalize()
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "Missing required fields: project_description", res.Message)

		req.ProjectDescription = "A new storefront"
		assert.NoError(t, v.Struct(req))
	})

	t.Run("unknown form_type is rejected", func(t *testing.T) {
		req := base()
		req.FormType = "newsletter"
		req.Normalize()
		res := validation.Summarize(v.Struct(req))
		assert.Equal(t, "Form type must be one of: consultation, inquiry", res.Message)
	})
}
