package v1

import (
	"net/http"

	"github.com/AbdulBasithMohammed/CVPro/internal/delivery/http/response"
	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}
	public.POST("/contact", handler.Submit)
}

// Submit godoc
// @Summary      Contact Form
// @Description  Forward a contact form submission to the support inbox.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ContactRequest  true  "Contact message"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent. We'll get back to you soon.", nil)
}
