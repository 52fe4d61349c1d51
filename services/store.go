// services/store.go
package services

import (
	"context"
	"errors"
	"time"

	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReminderStore is everything the pipeline needs from the database. The
// scheduler and dispatcher only see this interface, so tests substitute an
// in-memory fake without touching Postgres.
type ReminderStore interface {
	EligibleGarages(ctx context.Context) ([]models.Garage, error)
	EnabledSchedules(ctx context.Context, garageID uuid.UUID) ([]models.ReminderSchedule, error)
	DueVehicles(ctx context.Context, garageID uuid.UUID, reminderType string, targetDate time.Time) ([]models.Vehicle, error)
	LatestConsent(ctx context.Context, customerID uuid.UUID, channel string) (*models.ConsentRecord, error)
	AppendConsent(ctx context.Context, record *models.ConsentRecord) error
	FindTemplateID(ctx context.Context, garageID uuid.UUID, reminderType, channel string) (*uuid.UUID, error)
	CreateScheduledReminder(ctx context.Context, reminder *models.ScheduledReminder) (bool, error)
	PendingReminders(ctx context.Context, day time.Time, limit int) ([]models.ScheduledReminder, error)
	MarkSending(ctx context.Context, reminderID uuid.UUID) error
	MarkSent(ctx context.Context, reminderID uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, reminderID uuid.UUID, errMsg string) error
	ReclaimStuckSending(ctx context.Context, olderThan time.Time) (int64, error)
	AppendMessageLog(ctx context.Context, entry *models.MessageLog) error
	CustomersByPhone(ctx context.Context, phone string) ([]models.Customer, error)
}

// GormStore is the Postgres-backed ReminderStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) EligibleGarages(ctx context.Context) ([]models.Garage, error) {
	var garages []models.Garage
	err := s.db.WithContext(ctx).
		Where("subscription_status IN ?", []string{models.SubscriptionTrialing, models.SubscriptionActive}).
		Find(&garages).Error
	return garages, err
}

func (s *GormStore) EnabledSchedules(ctx context.Context, garageID uuid.UUID) ([]models.ReminderSchedule, error) {
	var schedules []models.ReminderSchedule
	err := s.db.WithContext(ctx).
		Where("garage_id = ? AND is_enabled = ?", garageID, true).
		Find(&schedules).Error
	return schedules, err
}

// DueVehicles selects vehicles whose mapped due-date column equals
// targetDate exactly (not a range) with the mapped reminder flag on,
// joined with their owning customer. An empty result is not an error.
func (s *GormStore) DueVehicles(ctx context.Context, garageID uuid.UUID, reminderType string, targetDate time.Time) ([]models.Vehicle, error) {
	dateColumn, enabledColumn, err := models.ReminderColumns(reminderType)
	if err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	err = s.db.WithContext(ctx).
		Preload("Customer").
		Where("garage_id = ?", garageID).
		Where(dateColumn+" = ?", utils.DateString(targetDate)).
		Where(enabledColumn+" = ?", true).
		Find(&vehicles).Error
	return vehicles, err
}

func (s *GormStore) LatestConsent(ctx context.Context, customerID uuid.UUID, channel string) (*models.ConsentRecord, error) {
	var record models.ConsentRecord
	err := s.db.WithContext(ctx).
		Where("customer_id = ? AND channel = ?", customerID, channel).
		Order("collected_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GormStore) AppendConsent(ctx context.Context, record *models.ConsentRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *GormStore) FindTemplateID(ctx context.Context, garageID uuid.UUID, reminderType, channel string) (*uuid.UUID, error) {
	var template models.MessageTemplate
	err := s.db.WithContext(ctx).
		Select("id").
		Where("garage_id = ? AND reminder_type = ? AND channel = ?", garageID, reminderType, channel).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template.ID, nil
}

// CreateScheduledReminder inserts with conflict-as-no-op on the
// (vehicle, type, date) dedup key. Returns whether a row was created.
func (s *GormStore) CreateScheduledReminder(ctx context.Context, reminder *models.ScheduledReminder) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "vehicle_id"}, {Name: "reminder_type"}, {Name: "scheduled_for"},
			},
			DoNothing: true,
		}).
		Create(reminder)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) PendingReminders(ctx context.Context, day time.Time, limit int) ([]models.ScheduledReminder, error) {
	var reminders []models.ScheduledReminder
	err := s.db.WithContext(ctx).
		Preload("Garage").
		Preload("Customer").
		Preload("Vehicle").
		Preload("Template").
		Where("scheduled_for = ? AND status = ?", utils.DateString(day), models.ReminderStatusPending).
		Limit(limit).
		Find(&reminders).Error
	return reminders, err
}

func (s *GormStore) MarkSending(ctx context.Context, reminderID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.ScheduledReminder{}).
		Where("id = ? AND status = ?", reminderID, models.ReminderStatusPending).
		Update("status", models.ReminderStatusSending).Error
}

func (s *GormStore) MarkSent(ctx context.Context, reminderID uuid.UUID, sentAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.ScheduledReminder{}).
		Where("id = ?", reminderID).
		Updates(map[string]interface{}{
			"status":  models.ReminderStatusSent,
			"sent_at": sentAt,
		}).Error
}

func (s *GormStore) MarkFailed(ctx context.Context, reminderID uuid.UUID, errMsg string) error {
	return s.db.WithContext(ctx).
		Model(&models.ScheduledReminder{}).
		Where("id = ?", reminderID).
		Updates(map[string]interface{}{
			"status":        models.ReminderStatusFailed,
			"error_message": errMsg,
		}).Error
}

// ReclaimStuckSending sweeps rows a crashed run left in 'sending' back to
// 'pending' so the next run picks them up.
func (s *GormStore) ReclaimStuckSending(ctx context.Context, olderThan time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.ScheduledReminder{}).
		Where("status = ? AND updated_at < ?", models.ReminderStatusSending, olderThan).
		Update("status", models.ReminderStatusPending)
	return result.RowsAffected, result.Error
}

func (s *GormStore) AppendMessageLog(ctx context.Context, entry *models.MessageLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) CustomersByPhone(ctx context.Context, phone string) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).Where("phone = ?", phone).Find(&customers).Error
	return customers, err
}
