package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

func reminderInput() ReminderInput {
	return ReminderInput{
		TaxRegime: entity.RegimeLucroPresumido,
		Category:  entity.CategoryImpostos,
		Title:     "IRPJ trimestral",
		DueDate:   time.Date(2024, time.December, 31, 9, 0, 0, 0, time.UTC),
		Frequency: entity.Frequency("annually"),
	}
}

func TestReminderService_Create(t *testing.T) {
	var stored *entity.FiscalReminder
	repo := &mockReminderRepo{
		createFunc: func(ctx context.Context, r *entity.FiscalReminder) error {
			stored = r
			return nil
		},
	}
	svc := NewReminderService(repo, fixedClock(november15), &mockLogger{})

	r, err := svc.Create(context.Background(), "clinic-1", reminderInput())
	require.NoError(t, err)
	require.Same(t, r, stored)

	assert.NotEmpty(t, r.ID)
	assert.True(t, r.IsActive)
	assert.Equal(t, entity.FrequencyAnnual, r.Frequency)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), r.DueDate)
	assert.Equal(t, november15, r.CreatedAt)
}

func TestReminderService_Create_Invalid(t *testing.T) {
	svc := NewReminderService(&mockReminderRepo{}, nil, &mockLogger{})

	in := reminderInput()
	in.Frequency = "weekly"
	_, err := svc.Create(context.Background(), "clinic-1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = reminderInput()
	in.Title = ""
	_, err = svc.Create(context.Background(), "clinic-1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = reminderInput()
	in.DueDate = time.Time{}
	_, err = svc.Create(context.Background(), "clinic-1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "", reminderInput())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReminderService_Update(t *testing.T) {
	existing := &entity.FiscalReminder{ID: "r-1", ClinicID: "clinic-1", IsActive: true}
	repo := &mockReminderRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.FiscalReminder, error) {
			return existing, nil
		},
	}
	svc := NewReminderService(repo, fixedClock(november15), &mockLogger{})

	inactive := false
	in := reminderInput()
	in.IsActive = &inactive
	r, err := svc.Update(context.Background(), "r-1", in)
	require.NoError(t, err)
	assert.False(t, r.IsActive)
	assert.Equal(t, "IRPJ trimestral", r.Title)
	assert.Equal(t, "clinic-1", r.ClinicID)
}

func TestReminderService_Update_NotFound(t *testing.T) {
	repo := &mockReminderRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.FiscalReminder, error) {
			return nil, port.ErrNotFound
		},
	}
	svc := NewReminderService(repo, nil, &mockLogger{})

	_, err := svc.Update(context.Background(), "r-404", reminderInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReminderService_List(t *testing.T) {
	repo := &mockReminderRepo{
		listActiveFunc: func(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error) {
			return []*entity.FiscalReminder{{ID: "r-1"}, {ID: "r-2"}}, nil
		},
	}
	svc := NewReminderService(repo, nil, &mockLogger{})

	reminders, err := svc.List(context.Background(), "clinic-1")
	require.NoError(t, err)
	assert.Len(t, reminders, 2)
}

func TestReminderService_Get(t *testing.T) {
	svc := NewReminderService(&mockReminderRepo{}, nil, &mockLogger{})

	reminder, err := svc.Get(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "r-1", reminder.ID)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
