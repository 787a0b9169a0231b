package services

import (
	"errors"
	"fmt"
	"time"

	"guesthouse-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// contactPriorityOrder sorts the inbox urgent-first. The enum lives in a
// varchar column, so alphabetical ordering would be wrong.
const contactPriorityOrder = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

type ContactService struct {
	DB     *gorm.DB
	mailer *EmailService
	log    *zap.Logger
}

func NewContactService(db *gorm.DB, mailer *EmailService, log *zap.Logger) *ContactService {
	return &ContactService{DB: db, mailer: mailer, log: log}
}

type CreateContactInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Priority  string
	IPAddress string
	UserAgent string
}

func (s *ContactService) Create(in CreateContactInput) (*models.Contact, error) {
	if in.Subject == "" {
		in.Subject = "Întrebare generală"
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium.String()
	}

	contact := &models.Contact{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Priority:  in.Priority,
		Status:    ContactNew.String(),
		Source:    "website",
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	}

	if err := s.DB.Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	_ = s.mailer.SendContactConfirmation(contact)
	_ = s.mailer.SendContactNotification(contact)

	return contact, nil
}

type ContactFilter struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// List returns messages ordered by priority (urgent first) then recency.
func (s *ContactService) List(f ContactFilter) ([]models.Contact, *Pagination, error) {
	page, limit := normalizePage(f.Page, f.Limit, 20, 100)

	q := s.DB.Model(&models.Contact{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR subject LIKE ? OR message LIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	var list []models.Contact
	if err := q.
		Order(contactPriorityOrder).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return list, newPagination(page, limit, total), nil
}

// Get loads a message, implicitly moving it from new to read. Retrieval is
// the read event.
func (s *ContactService) Get(id uint) (*models.Contact, error) {
	var ct models.Contact
	if err := s.DB.First(&ct, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}

	if ct.Status == ContactNew.String() {
		if err := s.DB.Model(&ct).Update("status", ContactRead.String()).Error; err != nil {
			return nil, fmt.Errorf("failed to mark contact as read: %w", err)
		}
		ct.Status = ContactRead.String()
	}

	return &ct, nil
}

// UpdateStatus sets any of the four statuses directly. Transitioning to
// replied always stamps the replied flag and timestamp server-side, whatever
// the caller sent.
func (s *ContactService) UpdateStatus(id uint, status ContactStatus, notes *string) (*models.Contact, error) {
	var ct models.Contact
	if err := s.DB.First(&ct, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}

	updates := map[string]interface{}{"status": status.String()}
	if notes != nil {
		updates["notes"] = *notes
	}
	if status == ContactReplied {
		now := time.Now().UTC()
		updates["replied"] = true
		updates["replied_at"] = now
	}

	if err := s.DB.Model(&ct).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact status: %w", err)
	}

	// reload, the map update bypassed the struct
	if err := s.DB.First(&ct, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload contact: %w", err)
	}
	return &ct, nil
}

func (s *ContactService) UpdatePriority(id uint, priority ContactPriority) (*models.Contact, error) {
	var ct models.Contact
	if err := s.DB.First(&ct, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}

	if err := s.DB.Model(&ct).Update("priority", priority.String()).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact priority: %w", err)
	}
	ct.Priority = priority.String()
	return &ct, nil
}

func (s *ContactService) Delete(id uint) error {
	res := s.DB.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ContactStats summarizes the inbox for the admin dashboard.
type ContactStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	Urgent   int64            `json:"urgent"`
	Today    int64            `json:"today"`
}

func (s *ContactService) Stats() (*ContactStats, error) {
	stats := &ContactStats{ByStatus: map[string]int64{}}

	if err := s.DB.Model(&models.Contact{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	for _, st := range []ContactStatus{ContactNew, ContactRead, ContactReplied, ContactArchived} {
		var n int64
		if err := s.DB.Model(&models.Contact{}).Where("status = ?", st.String()).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count contacts by status: %w", err)
		}
		stats.ByStatus[st.String()] = n
	}

	if err := s.DB.Model(&models.Contact{}).
		Where("priority = ?", PriorityUrgent.String()).
		Count(&stats.Urgent).Error; err != nil {
		return nil, fmt.Errorf("failed to count urgent contacts: %w", err)
	}

	todayStart := time.Now().UTC().Truncate(24 * time.Hour)
	if err := s.DB.Model(&models.Contact{}).
		Where("created_at >= ?", todayStart).
		Count(&stats.Today).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's contacts: %w", err)
	}

	return stats, nil
}
