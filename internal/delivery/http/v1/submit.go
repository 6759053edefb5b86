package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/delivery/http/response"
	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/apperror"
)

const replayedHeader = "Idempotent-Replayed"

// submit decodes the body into Req, runs the form usecase and writes the
// stored row as a one-element data array.
func submit[Req any, Rec any](c *gin.Context, run func(context.Context, *Req) (*domain.Receipt[Rec], error)) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		// Unparseable bodies are unexpected for the site's own forms
		c.Error(apperror.Unexpected(err))
		return
	}

	receipt, err := run(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	if receipt.Replayed {
		c.Header(replayedHeader, "true")
	}
	response.Success(c, http.StatusOK, receipt.Message, []*Rec{receipt.Record})
}
