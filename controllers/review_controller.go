package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100,personname"`
	Email    string `json:"email" binding:"omitempty,email"`
	City     string `json:"city" binding:"omitempty,max=100"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Title    string `json:"title" binding:"omitempty,max=200"`
	Comment  string `json:"comment" binding:"required,min=10,max=1000"`
	StayDate string `json:"stayDate" binding:"omitempty"`

	// Ignored on purpose: every new review starts as pending no matter what
	// the caller claims.
	Status string `json:"status"`
}

type UpdateReviewStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	ModeratorNotes *string `json:"moderatorNotes" binding:"omitempty,max=500"`
}

type SetReviewFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

type ReviewController struct {
	Svc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: svc}
}

// CreateReview handles POST /api/reviews.
func (ctl *ReviewController) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	var stayDate *time.Time
	if req.StayDate != "" {
		parsed, err := parseDateOnly(req.StayDate)
		if err != nil {
			utils.JSONValidationError(c, []utils.FieldError{
				{Field: "stayDate", Message: "must be a valid date (YYYY-MM-DD)"},
			})
			return
		}
		if parsed.After(todayUTC()) {
			utils.JSONValidationError(c, []utils.FieldError{
				{Field: "stayDate", Message: "stay date cannot be in the future"},
			})
			return
		}
		stayDate = &parsed
	}

	review, err := ctl.Svc.Create(services.CreateReviewInput{
		Name:      req.Name,
		Email:     req.Email,
		City:      req.City,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		StayDate:  stayDate,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateReview) {
			utils.JSONError(c, http.StatusTooManyRequests,
				"Ați trimis deja un review în ultimele 24 de ore. Te rugăm să aștepți înainte de a trimite un altul.")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server. Te rugăm să încerci din nou.")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated,
		"Review-ul dvs. a fost trimis cu succes! Va fi publicat după moderare.",
		gin.H{
			"id":        review.ID,
			"name":      review.Name,
			"rating":    review.Rating,
			"status":    review.Status,
			"createdAt": review.CreatedAt,
		})
}

func parseReviewListQuery(c *gin.Context) (services.ReviewFilter, bool) {
	var f services.ReviewFilter

	page, limit, ok := parsePageQuery(c)
	if !ok {
		return f, false
	}
	f.Page, f.Limit = page, limit

	if raw := c.Query("rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 5 {
			utils.JSONError(c, http.StatusBadRequest, "Rating-ul trebuie să fie între 1 și 5")
			return f, false
		}
		f.Rating = v
	}

	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Featured trebuie să fie boolean")
			return f, false
		}
		f.Featured = &v
	}

	f.Search = c.Query("search")
	return f, true
}

// GetReviews handles GET /api/reviews: the public listing, approved reviews
// only, restricted field set.
func (ctl *ReviewController) GetReviews(c *gin.Context) {
	f, ok := parseReviewListQuery(c)
	if !ok {
		return
	}

	list, pagination, err := ctl.Svc.ListPublic(f)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	public := make([]map[string]interface{}, 0, len(list))
	for _, r := range list {
		public = append(public, r.PublicView())
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"reviews":    public,
		"pagination": pagination,
	})
}

// GetReviewsAdmin handles GET /api/reviews/admin: unrestricted listing for
// moderation.
func (ctl *ReviewController) GetReviewsAdmin(c *gin.Context) {
	f, ok := parseReviewListQuery(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status != "" {
		if !services.ReviewStatus(status).IsValid() {
			utils.JSONError(c, http.StatusBadRequest, "Status invalid")
			return
		}
		f.Status = status
	}

	list, pagination, err := ctl.Svc.ListAdmin(f)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"reviews":    list,
		"pagination": pagination,
	})
}

// UpdateReviewStatus handles PUT /api/reviews/:id/status.
func (ctl *ReviewController) UpdateReviewStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	status := services.ReviewStatus(req.Status)
	if !status.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Status invalid")
		return
	}

	review, err := ctl.Svc.UpdateStatus(id, status, req.ModeratorNotes)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Review-ul nu a fost găsit")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Statusul review-ului a fost actualizat cu succes", review)
}

// SetReviewFeatured handles PUT /api/reviews/:id/featured.
func (ctl *ReviewController) SetReviewFeatured(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetReviewFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONValidationError(c, utils.FieldErrorsFromBinding(err))
		return
	}

	review, err := ctl.Svc.SetFeatured(id, *req.Featured)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Review-ul nu a fost găsit")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}

	message := "Review-ul a fost demarcat de la featured"
	if review.Featured {
		message = "Review-ul a fost marcat ca featured"
	}
	utils.JSONSuccess(c, http.StatusOK, message, review)
}

// MarkReviewHelpful handles POST /api/reviews/:id/helpful.
func (ctl *ReviewController) MarkReviewHelpful(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	helpful, err := ctl.Svc.MarkHelpful(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Review-ul nu a fost găsit")
		case errors.Is(err, services.ErrReviewNotApproved):
			utils.JSONError(c, http.StatusForbidden, "Nu puteți marca ca util un review care nu este aprobat")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Review-ul a fost marcat ca util", gin.H{
		"id":      id,
		"helpful": helpful,
	})
}

// GetReviewStats handles GET /api/reviews/stats/overview.
func (ctl *ReviewController) GetReviewStats(c *gin.Context) {
	stats, err := ctl.Svc.Stats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Eroare internă de server")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", stats)
}
