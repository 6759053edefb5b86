package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
)

type ConsultationHandler struct {
	consultationUC domain.ConsultationUsecase
}

// NewConsultationHandler registers the consultation and project inquiry routes
func NewConsultationHandler(public *gin.RouterGroup, consultationUC domain.ConsultationUsecase) {
	handler := &ConsultationHandler{
		consultationUC: consultationUC,
	}

	public.POST("/submit-consultation", handler.SubmitConsultation)
	public.POST("/submit-project-inquiry", handler.SubmitProjectInquiry)
}

// SubmitConsultation godoc
// @Summary      Book a Consultation
// @Description  Stores a consultation request. With form_type "inquiry" the body is treated as a project inquiry.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                      false  "Client key for safe retries"
// @Param        consultation     body      domain.ConsultationRequest  true   "Consultation Form Data"
// @Success      200              {object}  response.Response{data=[]domain.Consultation}
// @Failure      400              {object}  response.Response
// @Failure      405              {object}  response.Response
// @Failure      409              {object}  response.Response
// @Failure      500              {object}  response.Response
// @Router       /submit-consultation [post]
func (h *ConsultationHandler) SubmitConsultation(c *gin.Context) {
	submit(c, h.consultationUC.SubmitConsultation)
}

// SubmitProjectInquiry godoc
// @Summary      Submit Project Inquiry
// @Description  Stores a project inquiry in the consultations table with consultation_type "project_inquiry".
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                        false  "Client key for safe retries"
// @Param        inquiry          body      domain.ProjectInquiryRequest  true   "Project Inquiry Form Data"
// @Success      200              {object}  response.Response{data=[]domain.Consultation}
// @Failure      400              {object}  response.Response
// @Failure      405              {object}  response.Response
// @Failure      409              {object}  response.Response
// @Failure      500              {object}  response.Response
// @Router       /submit-project-inquiry [post]
func (h *ConsultationHandler) SubmitProjectInquiry(c *gin.Context) {
	submit(c, h.consultationUC.SubmitProjectInquiry)
}
