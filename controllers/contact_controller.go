package controllers

import (
	"errors"
	"net/http"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateContactRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100,personname"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Subject  string `json:"subject" binding:"omitempty,max=200"`
	Message  string `json:"message" binding:"required,min=10,max=2000"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

type UpdateContactStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateContactPriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

type ContactController struct {
	Svc *services.ContactService
}

func NewContactController(svc *services.ContactService) *ContactController {
	return &ContactController{Svc: svc}
}

// CreateContact handles POST /api/contact.
func (ctl *ContactController) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	contact, err := ctl.Svc.Create(services.CreateContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Priority:  req.Priority,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server. Te rugăm să încerci din nou.")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated,
		"Mesajul dvs. a fost trimis cu succes! Vă vom răspunde în cel mai scurt timp posibil.",
		gin.H{
			"id":        contact.ID,
			"name":      contact.Name,
			"subject":   contact.Subject,
			"priority":  contact.Priority,
			"createdAt": contact.CreatedAt,
		})
}

// GetContacts handles GET /api/contact.
func (ctl *ContactController) GetContacts(c *gin.Context) {
	page, limit, ok := parsePageQuery(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status != "" && !services.ContactStatus(status).IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Status invalid")
		return
	}
	priority := c.Query("priority")
	if priority != "" && !services.ContactPriority(priority).IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Prioritate invalidă")
		return
	}

	list, pagination, err := ctl.Svc.List(services.ContactFilter{
		Status:   status,
		Priority: priority,
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}
	if list == nil {
		list = []models.Contact{}
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"contacts":   list,
		"pagination": pagination,
	})
}

// GetContact handles GET /api/contact/:id. Fetching a new message marks it
// read.
func (ctl *ContactController) GetContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	contact, err := ctl.Svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Mesajul de contact nu a fost găsit")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", contact)
}

// UpdateContactStatus handles PUT /api/contact/:id/status.
func (ctl *ContactController) UpdateContactStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	status := services.ContactStatus(req.Status)
	if !status.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Status invalid")
		return
	}

	contact, err := ctl.Svc.UpdateStatus(id, status, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Mesajul de contact nu a fost găsit")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Statusul mesajului a fost actualizat cu succes", contact)
}

// UpdateContactPriority handles PUT /api/contact/:id/priority.
func (ctl *ContactController) UpdateContactPriority(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateContactPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	priority := services.ContactPriority(req.Priority)
	if !priority.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Prioritate invalidă")
		return
	}

	contact, err := ctl.Svc.UpdatePriority(id, priority)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Mesajul de contact nu a fost găsit")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Prioritatea mesajului a fost actualizată cu succes", contact)
}

// GetContactStats handles GET /api/contact/stats/overview.
func (ctl *ContactController) GetContactStats(c *gin.Context) {
	stats, err := ctl.Svc.Stats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", stats)
}

// DeleteContact handles DELETE /api/contact/:id.
func (ctl *ContactController) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctl.Svc.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Mesajul de contact nu a fost găsit")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Mesajul de contact a fost șters cu succes", nil)
}
