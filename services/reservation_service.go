package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const codeMaxRetries = 5

// ReservationService owns the reservation lifecycle: availability checking,
// pricing, confirmation codes and status transitions.
type ReservationService struct {
	DB     *gorm.DB
	cfg    config.Config
	mailer *EmailService
	log    *zap.Logger

	// createMu serializes creation so two overlapping requests cannot both
	// pass the availability check before either inserts. MySQL offers no
	// range-exclusion constraint, so the service is the single writer.
	createMu sync.Mutex
}

func NewReservationService(db *gorm.DB, cfg config.Config, mailer *EmailService, log *zap.Logger) *ReservationService {
	return &ReservationService{DB: db, cfg: cfg, mailer: mailer, log: log}
}

// CreateReservationInput carries validated creation fields. Dates are
// date-only values at midnight UTC.
type CreateReservationInput struct {
	Name         string
	Email        string
	Phone        string
	CheckinDate  time.Time
	CheckoutDate time.Time
	Guests       int
	Message      string
}

// Create checks availability, prices the stay, assigns a confirmation code
// and persists the reservation. Confirmation emails go out afterwards,
// best-effort.
func (s *ReservationService) Create(in CreateReservationInput) (*models.Reservation, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	total, err := TotalPrice(in.CheckinDate, in.CheckoutDate, in.Guests, s.cfg.PricePerNight)
	if err != nil {
		return nil, fmt.Errorf("pricing failed: %w", err)
	}

	reservation := &models.Reservation{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		CheckinDate:     in.CheckinDate,
		CheckoutDate:    in.CheckoutDate,
		Guests:          in.Guests,
		Message:         in.Message,
		SpecialRequests: in.Message,
		Status:          ReservationPending.String(),
		TotalPrice:      total,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reservation
		err := tx.
			Where("status IN ?", []string{ReservationPending.String(), ReservationConfirmed.String()}).
			Where("checkin_date < ? AND checkout_date > ?", in.CheckoutDate, in.CheckinDate).
			First(&existing).Error
		if err == nil {
			return &ConflictError{CheckinDate: existing.CheckinDate, CheckoutDate: existing.CheckoutDate}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("availability check failed: %w", err)
		}

		var createErr error
		for attempt := 0; attempt < codeMaxRetries; attempt++ {
			code, genErr := utils.GenerateConfirmationCode()
			if genErr != nil {
				return fmt.Errorf("failed to generate confirmation code: %w", genErr)
			}
			reservation.ConfirmationCode = code

			createErr = tx.Create(reservation).Error
			if createErr == nil {
				return nil
			}
			if isDuplicateKeyErr(createErr) {
				s.log.Warn("confirmation code collision, retrying",
					zap.Int("attempt", attempt+1))
				reservation.ID = 0
				continue
			}
			return fmt.Errorf("failed to create reservation: %w", createErr)
		}
		return fmt.Errorf("failed to create reservation after retries: %w", createErr)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Both sends log and record their own failures; the reservation stands
	// either way.
	_ = s.mailer.SendReservationConfirmation(reservation)
	_ = s.mailer.SendReservationNotification(reservation)

	return reservation, nil
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

// ReservationFilter narrows the admin listing.
type ReservationFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// List returns reservations newest first, with optional status filter and
// search over name, email and confirmation code.
func (s *ReservationService) List(f ReservationFilter) ([]models.Reservation, *Pagination, error) {
	page, limit := normalizePage(f.Page, f.Limit, 20, 100)

	q := s.DB.Model(&models.Reservation{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR confirmation_code LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	var list []models.Reservation
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return list, newPagination(page, limit, total), nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	return &r, nil
}

func (s *ReservationService) GetByCode(code string) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Where("confirmation_code = ?", code).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reservation by code: %w", err)
	}
	return &r, nil
}

// UpdateStatus applies a lifecycle transition and notifies the guest.
// Illegal transitions (anything out of a terminal state, skipping
// confirmation) are rejected with InvalidTransitionError.
func (s *ReservationService) UpdateStatus(id uint, newStatus ReservationStatus) (*models.Reservation, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	current, err := ParseReservationStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("stored status is corrupt: %w", err)
	}
	if !current.CanTransitionTo(newStatus) {
		return nil, &InvalidTransitionError{From: current, To: newStatus}
	}

	if err := s.DB.Model(r).Update("status", newStatus.String()).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	r.Status = newStatus.String()

	_ = s.mailer.SendStatusUpdate(r, newStatus)

	return r, nil
}

// DateAvailability reports whether a given date is free, along with how many
// blocking reservations occupy it. A reservation occupies every night from
// check-in up to but not including checkout.
func (s *ReservationService) DateAvailability(date time.Time) (bool, int64, error) {
	var count int64
	err := s.DB.Model(&models.Reservation{}).
		Where("status IN ?", []string{ReservationPending.String(), ReservationConfirmed.String()}).
		Where("checkin_date <= ? AND checkout_date > ?", date, date).
		Count(&count).Error
	if err != nil {
		return false, 0, fmt.Errorf("failed to check availability: %w", err)
	}
	return count == 0, count, nil
}
