package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateReservationRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100,personname"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	CheckinDate  string `json:"checkinDate" binding:"required"`
	CheckoutDate string `json:"checkoutDate" binding:"required"`
	Guests       int    `json:"guests" binding:"required,min=1,max=10"`
	Message      string `json:"message" binding:"omitempty,max=1000"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Shared helpers
// ---------------------------

// parseDateOnly accepts "2006-01-02" or RFC3339 and normalizes to midnight
// UTC, so every stored date compares on day boundaries.
func parseDateOnly(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC().Truncate(24 * time.Hour), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func todayUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "ID invalid")
		return 0, false
	}
	return uint(id), true
}

func parsePageQuery(c *gin.Context) (page, limit int, ok bool) {
	page, limit = 1, 0
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Pagina trebuie să fie un număr pozitiv")
			return 0, 0, false
		}
		page = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Limita trebuie să fie un număr pozitiv")
			return 0, 0, false
		}
		limit = v
	}
	return page, limit, true
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

// CreateReservation handles POST /api/reservations.
func (ctl *ReservationController) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	var fieldErrs []utils.FieldError

	checkin, err := parseDateOnly(req.CheckinDate)
	if err != nil {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "checkinDate", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	checkout, err := parseDateOnly(req.CheckoutDate)
	if err != nil {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "checkoutDate", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(fieldErrs) == 0 {
		if checkin.Before(todayUTC()) {
			fieldErrs = append(fieldErrs, utils.FieldError{Field: "checkinDate", Message: "check-in date cannot be in the past"})
		}
		if !checkout.After(checkin) {
			fieldErrs = append(fieldErrs, utils.FieldError{Field: "checkoutDate", Message: "check-out date must be after check-in date"})
		}
	}
	if len(fieldErrs) > 0 {
		utils.JSONValidationError(c, fieldErrs)
		return
	}

	reservation, err := ctl.Svc.Create(services.CreateReservationInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Guests:       req.Guests,
		Message:      req.Message,
	})
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Pentru perioada selectată există deja o rezervare. Te rugăm să alegi alte date.",
				"conflictingReservation": gin.H{
					"checkin":  conflict.CheckinDate,
					"checkout": conflict.CheckoutDate,
				},
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server. Te rugăm să încerci din nou.")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated,
		"Rezervarea a fost înregistrată cu succes! Veți primi un email de confirmare în curând.",
		gin.H{
			"id":               reservation.ID,
			"confirmationCode": reservation.ConfirmationCode,
			"name":             reservation.Name,
			"checkinDate":      reservation.CheckinDate,
			"checkoutDate":     reservation.CheckoutDate,
			"guests":           reservation.Guests,
			"totalPrice":       reservation.TotalPrice,
			"status":           reservation.Status,
		})
}

// GetReservations handles GET /api/reservations.
func (ctl *ReservationController) GetReservations(c *gin.Context) {
	page, limit, ok := parsePageQuery(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status != "" {
		if _, err := services.ParseReservationStatus(status); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Status invalid")
			return
		}
	}

	list, pagination, err := ctl.Svc.List(services.ReservationFilter{
		Status: status,
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}
	if list == nil {
		list = []models.Reservation{}
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"reservations": list,
		"pagination":   pagination,
	})
}

// GetReservation handles GET /api/reservations/:id.
func (ctl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := ctl.Svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Rezervarea nu a fost găsită")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", reservation)
}

// GetReservationByCode handles GET /api/reservations/code/:confirmationCode.
// Guests use this to look up their own booking, so only the public subset of
// fields is returned.
func (ctl *ReservationController) GetReservationByCode(c *gin.Context) {
	code := c.Param("confirmationCode")

	reservation, err := ctl.Svc.GetByCode(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Rezervarea cu acest cod de confirmare nu a fost găsită")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", reservation.PublicView())
}

// UpdateReservationStatus handles PUT /api/reservations/:id/status.
func (ctl *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	newStatus, err := services.ParseReservationStatus(req.Status)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Status invalid")
		return
	}

	reservation, err := ctl.Svc.UpdateStatus(id, newStatus)
	if err != nil {
		var invalid *services.InvalidTransitionError
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Rezervarea nu a fost găsită")
		case errors.As(err, &invalid):
			utils.JSONError(c, http.StatusBadRequest, invalid.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Statusul rezervării a fost actualizat cu succes", reservation)
}

// GetAvailability handles GET /api/reservations/availability/:date.
func (ctl *ReservationController) GetAvailability(c *gin.Context) {
	date, err := parseDateOnly(c.Param("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Data nu este validă")
		return
	}

	available, occupying, err := ctl.Svc.DateAvailability(date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"date":         date.Format("2006-01-02"),
		"available":    available,
		"reservations": occupying,
	})
}
