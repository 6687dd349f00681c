package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

func newReminder(id string, regime entity.TaxRegime, due time.Time) *entity.FiscalReminder {
	now := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)
	return &entity.FiscalReminder{
		ID:        id,
		ClinicID:  "clinic-1",
		TaxRegime: regime,
		Category:  entity.CategoryImpostos,
		Title:     "Reminder " + id,
		DueDate:   due,
		Frequency: entity.FrequencyMonthly,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestReminderRepository_QueryActive(t *testing.T) {
	repo := NewReminderRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	inactive := newReminder("inactive", entity.RegimeSimples, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	inactive.IsActive = false

	for _, r := range []*entity.FiscalReminder{
		newReminder("later", entity.RegimeSimples, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)),
		newReminder("sooner", entity.RegimeSimples, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)),
		newReminder("pf", entity.RegimePF, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)),
		inactive,
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	reminders, err := repo.QueryActive(ctx, "clinic-1", entity.RegimeSimples)
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, "sooner", reminders[0].ID)
	assert.Equal(t, "later", reminders[1].ID)
	assert.Equal(t, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC), reminders[1].DueDate)

	all, err := repo.ListActive(ctx, "clinic-1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReminderRepository_QueryActive_ExactRegimeMatch(t *testing.T) {
	repo := NewReminderRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	for _, r := range []*entity.FiscalReminder{
		newReminder("simples", entity.RegimeSimples, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)),
		newReminder("shared", entity.RegimeAll, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)),
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	reminders, err := repo.QueryActive(ctx, "clinic-1", entity.RegimeSimples)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "simples", reminders[0].ID)

	reminders, err = repo.QueryActive(ctx, "clinic-1", entity.RegimeAll)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "shared", reminders[0].ID)
}

func TestReminderRepository_NormalisesAnnually(t *testing.T) {
	sqlDB := newTestDB(t, 0)
	repo := NewReminderRepository(sqlDB, zap.NewNop())
	ctx := context.Background()

	_, err := sqlDB.ExecContext(ctx, `
		INSERT INTO fiscal_document_reminders (id, clinic_id, tax_regime, category, title, due_date, frequency)
		VALUES ('legacy', 'clinic-1', 'pf', 'impostos', 'Carnê-leão', '2024-12-31', 'annually')`)
	require.NoError(t, err)

	r, err := repo.GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, entity.FrequencyAnnual, r.Frequency)
	assert.True(t, r.IsActive)
	assert.Nil(t, r.Subcategory)
}

func TestReminderRepository_UpdateAndDelete(t *testing.T) {
	repo := NewReminderRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	r := newReminder("r-1", entity.RegimeLucroReal, time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, r))

	sub := "irpj_csll"
	r.Subcategory = &sub
	r.Title = "IRPJ/CSLL"
	r.IsActive = false
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.GetByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "IRPJ/CSLL", got.Title)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.Subcategory)
	assert.Equal(t, sub, *got.Subcategory)

	active, err := repo.ListActive(ctx, "clinic-1")
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, repo.Delete(ctx, "r-1"))
	_, err = repo.GetByID(ctx, "r-1")
	assert.ErrorIs(t, err, port.ErrNotFound)

	missing := newReminder("nope", entity.RegimePF, time.Now())
	assert.ErrorIs(t, repo.Update(ctx, missing), port.ErrNotFound)
}
