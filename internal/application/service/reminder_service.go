package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// ReminderInput carries the editable fields of a reminder
type ReminderInput struct {
	TaxRegime   entity.TaxRegime `json:"tax_regime" validate:"required,regime"`
	Category    entity.Category  `json:"category" validate:"required,category"`
	Subcategory *string          `json:"subcategory,omitempty" validate:"omitempty,max=64"`
	Title       string           `json:"title" validate:"required,max=255"`
	Description string           `json:"description" validate:"omitempty,max=2000"`
	DueDate     time.Time        `json:"due_date" validate:"required"`
	Frequency   entity.Frequency `json:"frequency" validate:"required,frequency"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// ReminderService manages user-defined fiscal reminders
type ReminderService interface {
	List(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error)
	Get(ctx context.Context, id string) (*entity.FiscalReminder, error)
	Create(ctx context.Context, clinicID string, in ReminderInput) (*entity.FiscalReminder, error)
	Update(ctx context.Context, id string, in ReminderInput) (*entity.FiscalReminder, error)
	Delete(ctx context.Context, id string) error
}

type reminderServiceImpl struct {
	reminderRepo port.ReminderRepository
	clock        port.Clock
	logger       Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(reminderRepo port.ReminderRepository, clock port.Clock, logger Logger) ReminderService {
	if clock == nil {
		clock = port.SystemClock
	}
	return &reminderServiceImpl{
		reminderRepo: reminderRepo,
		clock:        clock,
		logger:       logger,
	}
}

// List returns the clinic's active reminders, soonest first
func (s *reminderServiceImpl) List(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	reminders, err := s.reminderRepo.ListActive(ctx, clinicID)
	if err != nil {
		return nil, storeErr("failed to list reminders", err)
	}
	return reminders, nil
}

// Get returns a reminder by id, active or not
func (s *reminderServiceImpl) Get(ctx context.Context, id string) (*entity.FiscalReminder, error) {
	if id == "" {
		return nil, invalidf("reminder id is required")
	}
	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("failed to get reminder", err)
	}
	return reminder, nil
}

func (s *reminderServiceImpl) Create(ctx context.Context, clinicID string, in ReminderInput) (*entity.FiscalReminder, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reminder := &entity.FiscalReminder{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		IsActive:  true,
		CreatedAt: now,
	}
	applyReminderInput(reminder, in, now)

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		s.logger.Error("Failed to create reminder", "clinic_id", clinicID, "error", err)
		return nil, storeErr("failed to create reminder", err)
	}

	s.logger.Info("Reminder created", "id", reminder.ID, "clinic_id", clinicID, "due_date", reminder.DueDate.Format(entity.DateLayout))
	return reminder, nil
}

// Update replaces the editable fields of an existing reminder
func (s *reminderServiceImpl) Update(ctx context.Context, id string, in ReminderInput) (*entity.FiscalReminder, error) {
	if id == "" {
		return nil, invalidf("reminder id is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("failed to get reminder", err)
	}
	applyReminderInput(reminder, in, s.clock.Now())

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		s.logger.Error("Failed to update reminder", "id", id, "error", err)
		return nil, storeErr("failed to update reminder", err)
	}

	s.logger.Info("Reminder updated", "id", id)
	return reminder, nil
}

func (s *reminderServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalidf("reminder id is required")
	}
	if err := s.reminderRepo.Delete(ctx, id); err != nil {
		return storeErr("failed to delete reminder", err)
	}
	s.logger.Info("Reminder deleted", "id", id)
	return nil
}

func applyReminderInput(r *entity.FiscalReminder, in ReminderInput, now time.Time) {
	r.TaxRegime = in.TaxRegime
	r.Category = in.Category
	r.Subcategory = in.Subcategory
	r.Title = in.Title
	r.Description = in.Description
	r.DueDate = *dateOnly(&in.DueDate)
	r.Frequency = in.Frequency.Normalize()
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	r.UpdatedAt = now
}
