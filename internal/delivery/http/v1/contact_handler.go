package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/submit-contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Stores a contact message and queues a thank-you email to the sender.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                 false  "Client key for safe retries"
// @Param        contact          body      domain.ContactRequest  true   "Contact Form Data"
// @Success      200              {object}  response.Response{data=[]domain.Contact}
// @Failure      400              {object}  response.Response
// @Failure      405              {object}  response.Response
// @Failure      409              {object}  response.Response
// @Failure      500              {object}  response.Response
// @Router       /submit-contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	submit(c, h.contactUC.Submit)
}
