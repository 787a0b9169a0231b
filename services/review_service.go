package services

import (
	"errors"
	"fmt"
	"time"

	"guesthouse-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reviewDuplicateWindow is the rolling window in which one email address may
// submit only a single review. Soft spam control, not a uniqueness rule.
const reviewDuplicateWindow = 24 * time.Hour

// reviewStatusOrder keeps pending reviews at the top of the moderation
// queue; varchar columns would otherwise sort approved before pending.
const reviewStatusOrder = "CASE status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 ELSE 2 END"

type ReviewService struct {
	DB  *gorm.DB
	log *zap.Logger
}

func NewReviewService(db *gorm.DB, log *zap.Logger) *ReviewService {
	return &ReviewService{DB: db, log: log}
}

type CreateReviewInput struct {
	Name      string
	Email     string
	City      string
	Rating    int
	Title     string
	Comment   string
	StayDate  *time.Time
	IPAddress string
}

// Create stores a new review. The status is always pending for moderation,
// regardless of anything the caller supplied. Returns ErrDuplicateReview if
// the email already submitted one in the last 24 hours.
func (s *ReviewService) Create(in CreateReviewInput) (*models.Review, error) {
	if in.Email != "" {
		var existing models.Review
		err := s.DB.
			Where("email = ?", in.Email).
			Where("created_at >= ?", time.Now().UTC().Add(-reviewDuplicateWindow)).
			First(&existing).Error
		if err == nil {
			return nil, ErrDuplicateReview
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check for duplicate review: %w", err)
		}
	}

	review := &models.Review{
		Name:      in.Name,
		Email:     in.Email,
		City:      in.City,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
		StayDate:  in.StayDate,
		Status:    ReviewPending.String(),
		IPAddress: in.IPAddress,
	}

	if err := s.DB.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

type ReviewFilter struct {
	Status   string
	Rating   int
	Featured *bool
	Search   string
	Page     int
	Limit    int
}

// ListPublic returns approved reviews only, featured first, then by
// helpfulness, then recency.
func (s *ReviewService) ListPublic(f ReviewFilter) ([]models.Review, *Pagination, error) {
	page, limit := normalizePage(f.Page, f.Limit, 10, 50)

	q := s.DB.Model(&models.Review{}).Where("status = ?", ReviewApproved.String())
	if f.Rating > 0 {
		q = q.Where("rating = ?", f.Rating)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	var list []models.Review
	if err := q.
		Order("featured DESC").
		Order("helpful DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return list, newPagination(page, limit, total), nil
}

// ListAdmin returns every review, pending first for the moderation queue.
func (s *ReviewService) ListAdmin(f ReviewFilter) ([]models.Review, *Pagination, error) {
	page, limit := normalizePage(f.Page, f.Limit, 20, 100)

	q := s.DB.Model(&models.Review{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Rating > 0 {
		q = q.Where("rating = ?", f.Rating)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR city LIKE ? OR comment LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	var list []models.Review
	if err := q.
		Order(reviewStatusOrder).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return list, newPagination(page, limit, total), nil
}

func (s *ReviewService) GetByID(id uint) (*models.Review, error) {
	var r models.Review
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &r, nil
}

// UpdateStatus moderates a review. Moderators may move freely between
// pending, approved and rejected.
func (s *ReviewService) UpdateStatus(id uint, status ReviewStatus, moderatorNotes *string) (*models.Review, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status.String()}
	if moderatorNotes != nil {
		updates["moderator_notes"] = *moderatorNotes
	}

	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}
	r.Status = status.String()
	if moderatorNotes != nil {
		r.ModeratorNotes = *moderatorNotes
	}
	return r, nil
}

func (s *ReviewService) SetFeatured(id uint, featured bool) (*models.Review, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(r).Update("featured", featured).Error; err != nil {
		return nil, fmt.Errorf("failed to update featured flag: %w", err)
	}
	r.Featured = featured
	return r, nil
}

// MarkHelpful bumps the helpful counter atomically and returns the new
// value. Only approved reviews can collect votes.
func (s *ReviewService) MarkHelpful(id uint) (int, error) {
	var helpful int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var r models.Review
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load review: %w", err)
		}

		if r.Status != ReviewApproved.String() {
			return ErrReviewNotApproved
		}

		// counter bump in SQL, not a read-modify-write
		if err := tx.Model(&r).
			UpdateColumn("helpful", gorm.Expr("helpful + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment helpful: %w", err)
		}

		if err := tx.First(&r, id).Error; err != nil {
			return fmt.Errorf("failed to reload review: %w", err)
		}
		helpful = r.Helpful
		return nil
	})
	if err != nil {
		return 0, err
	}
	return helpful, nil
}

// ReviewStats summarizes moderation state and ratings of approved reviews.
type ReviewStats struct {
	Total              int64            `json:"total"`
	ByStatus           map[string]int64 `json:"byStatus"`
	Featured           int64            `json:"featured"`
	AverageRating      float64          `json:"averageRating"`
	RatingDistribution map[int]int64    `json:"ratingDistribution"`
}

func (s *ReviewService) Stats() (*ReviewStats, error) {
	stats := &ReviewStats{
		ByStatus:           map[string]int64{},
		RatingDistribution: map[int]int64{},
	}

	if err := s.DB.Model(&models.Review{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	for _, st := range []ReviewStatus{ReviewPending, ReviewApproved, ReviewRejected} {
		var n int64
		if err := s.DB.Model(&models.Review{}).Where("status = ?", st.String()).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count reviews by status: %w", err)
		}
		stats.ByStatus[st.String()] = n
	}

	if err := s.DB.Model(&models.Review{}).
		Where("featured = ?", true).
		Count(&stats.Featured).Error; err != nil {
		return nil, fmt.Errorf("failed to count featured reviews: %w", err)
	}

	var avg *float64
	if err := s.DB.Model(&models.Review{}).
		Where("status = ?", ReviewApproved.String()).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}
	if avg != nil {
		stats.AverageRating = *avg
	}

	for rating := 1; rating <= 5; rating++ {
		var n int64
		if err := s.DB.Model(&models.Review{}).
			Where("rating = ? AND status = ?", rating, ReviewApproved.String()).
			Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to compute rating distribution: %w", err)
		}
		stats.RatingDistribution[rating] = n
	}

	return stats, nil
}
