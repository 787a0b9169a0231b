package controllers

import (
	"net/http"

	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type TestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type EmailController struct {
	Mailer *services.EmailService
}

func NewEmailController(mailer *services.EmailService) *EmailController {
	return &EmailController{Mailer: mailer}
}

// SendTestEmail handles POST /api/email/test, used to verify SMTP settings
// after deployment.
func (ctl *EmailController) SendTestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	if err := ctl.Mailer.SendTestEmail(req.Email); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Trimiterea email-ului de test a eșuat")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Email-ul de test a fost trimis", nil)
}
