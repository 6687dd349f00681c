package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/persistence/sqlite"
)

func newDocument(id string, regime entity.TaxRegime, category entity.Category, sub string, year int) *entity.FiscalDocument {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	d := &entity.FiscalDocument{
		ID:         id,
		ClinicID:   "clinic-1",
		Name:       id + ".pdf",
		FileURL:    "/files/" + id,
		FilePath:   "clinic-1/" + id,
		FileType:   entity.FileTypePDF,
		MimeType:   "application/pdf",
		FileSize:   128,
		TaxRegime:  regime,
		Category:   category,
		FiscalYear: year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if sub != "" {
		d.Subcategory = &sub
	}
	return d
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	doc := newDocument("doc-1", entity.RegimeSimples, entity.CategoryImpostos, "das_simples", 2024)
	month := 3
	doc.ReferenceMonth = &month
	doc.ExpirationDate = datePtr(2025, time.January, 31)
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1.pdf", got.Name)
	assert.Equal(t, entity.RegimeSimples, got.TaxRegime)
	assert.Equal(t, "das_simples", got.SubcategoryValue())
	assert.Equal(t, 3, got.Month())
	require.NotNil(t, got.ExpirationDate)
	assert.Equal(t, "2025-01-31", got.ExpirationDate.Format(entity.DateLayout))
	assert.Equal(t, int64(128), got.FileSize)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestDocumentRepository_QueryByClinicYearRegime(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newDocument("simples", entity.RegimeSimples, entity.CategoryImpostos, "das_simples", 2024)))
	require.NoError(t, repo.Create(ctx, newDocument("shared", entity.RegimeAll, entity.CategoryIdentificacao, "cnpj", 2024)))
	require.NoError(t, repo.Create(ctx, newDocument("pf", entity.RegimePF, entity.CategoryIdentificacao, "cpf", 2024)))
	require.NoError(t, repo.Create(ctx, newDocument("old", entity.RegimeSimples, entity.CategoryImpostos, "das_simples", 2023)))
	other := newDocument("other-clinic", entity.RegimeSimples, entity.CategoryImpostos, "das_simples", 2024)
	other.ClinicID = "clinic-2"
	require.NoError(t, repo.Create(ctx, other))

	docs, err := repo.QueryByClinicYearRegime(ctx, "clinic-1", 2024, entity.RegimeSimples)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"simples", "shared"}, ids(docs))

	docs, err = repo.QueryByClinicYearRegime(ctx, "clinic-1", 2024, entity.RegimeAll)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"simples", "shared", "pf"}, ids(docs))

	docs, err = repo.QueryByClinicYearRegime(ctx, "clinic-9", 2024, entity.RegimeSimples)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocumentRepository_QueryExpiring(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	late := newDocument("late", entity.RegimeAll, entity.CategoryIdentificacao, "alvara", 2024)
	late.ExpirationDate = datePtr(2024, time.December, 20)
	soon := newDocument("soon", entity.RegimeAll, entity.CategoryIdentificacao, "certificado_digital", 2024)
	soon.ExpirationDate = datePtr(2024, time.November, 20)
	expired := newDocument("expired", entity.RegimeAll, entity.CategoryIdentificacao, "licenca_vigilancia", 2024)
	expired.ExpirationDate = datePtr(2024, time.October, 1)
	far := newDocument("far", entity.RegimeAll, entity.CategoryIdentificacao, "cro_pj", 2024)
	far.ExpirationDate = datePtr(2025, time.June, 1)
	none := newDocument("none", entity.RegimeAll, entity.CategoryIdentificacao, "cnpj", 2024)

	for _, d := range []*entity.FiscalDocument{late, soon, expired, far, none} {
		require.NoError(t, repo.Create(ctx, d))
	}

	docs, err := repo.QueryExpiring(ctx, "clinic-1", time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"expired", "soon", "late"}, ids(docs))
}

func TestDocumentRepository_WithoutExpirationColumn(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t, 2), zap.NewNop())
	ctx := context.Background()

	doc := newDocument("doc-1", entity.RegimePF, entity.CategoryIdentificacao, "cpf", 2024)
	doc.ExpirationDate = datePtr(2025, time.January, 1)
	require.NoError(t, repo.Create(ctx, doc))

	_, err := repo.QueryExpiring(ctx, "clinic-1", time.Now())
	assert.ErrorIs(t, err, port.ErrFieldUnavailable)

	docs, err := repo.ListByClinic(ctx, "clinic-1", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].ExpirationDate)

	err = repo.UpdateMetadata(ctx, "doc-1", entity.DocumentUpdate{ExpirationDate: datePtr(2025, time.May, 1)})
	assert.ErrorIs(t, err, port.ErrFieldUnavailable)
}

func TestDocumentRepository_Lists(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	for m := 1; m <= 3; m++ {
		d := newDocument("das-"+string(rune('0'+m)), entity.RegimeSimples, entity.CategoryImpostos, "das_simples", 2024)
		month := m
		d.ReferenceMonth = &month
		require.NoError(t, repo.Create(ctx, d))
	}
	require.NoError(t, repo.Create(ctx, newDocument("rent", entity.RegimeSimples, entity.CategoryDespesas, "aluguel", 2024)))
	require.NoError(t, repo.Create(ctx, newDocument("prev", entity.RegimeSimples, entity.CategoryDespesas, "aluguel", 2023)))

	year := 2024
	docs, err := repo.ListByClinic(ctx, "clinic-1", &year)
	require.NoError(t, err)
	assert.Len(t, docs, 4)

	docs, err = repo.ListByClinic(ctx, "clinic-1", nil)
	require.NoError(t, err)
	assert.Len(t, docs, 5)

	docs, err = repo.ListByCategory(ctx, "clinic-1", entity.CategoryDespesas, 2024)
	require.NoError(t, err)
	assert.Equal(t, []string{"rent"}, ids(docs))

	docs, err = repo.ListByMonth(ctx, "clinic-1", 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"das-2"}, ids(docs))

	counts, err := repo.CountByCategory(ctx, "clinic-1", 2024)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[entity.CategoryImpostos])
	assert.Equal(t, 1, counts[entity.CategoryDespesas])
	assert.Equal(t, 0, counts[entity.CategoryDividas])
	assert.Len(t, counts, len(entity.Categories))
}

func TestDocumentRepository_UpdateAndDelete(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t, 0), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newDocument("doc-1", entity.RegimePF, entity.CategoryIdentificacao, "cpf", 2024)))

	notes := "conferido pelo contador"
	require.NoError(t, repo.UpdateMetadata(ctx, "doc-1", entity.DocumentUpdate{
		Notes:          &notes,
		ExpirationDate: datePtr(2026, time.February, 28),
	}))

	got, err := repo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, "2026-02-28", got.ExpirationDate.Format(entity.DateLayout))
	assert.Equal(t, "doc-1.pdf", got.Name)

	err = repo.UpdateMetadata(ctx, "missing", entity.DocumentUpdate{Notes: &notes})
	assert.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "doc-1"))
	_, err = repo.GetByID(ctx, "doc-1")
	assert.ErrorIs(t, err, port.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "doc-1"), port.ErrNotFound)
}

func TestDocumentRepository_TransactionRollback(t *testing.T) {
	sqlDB := newTestDB(t, 0)
	tx := sqlite.NewDB(sqlDB, zap.NewNop())
	repo := NewDocumentRepository(sqlDB, zap.NewNop())
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, repo.Create(txCtx, newDocument("doc-1", entity.RegimePF, entity.CategoryIdentificacao, "cpf", 2024)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, "doc-1")
	assert.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, tx.WithTransaction(ctx, func(txCtx context.Context) error {
		return repo.Create(txCtx, newDocument("doc-2", entity.RegimePF, entity.CategoryIdentificacao, "cpf", 2024))
	}))
	_, err = repo.GetByID(ctx, "doc-2")
	assert.NoError(t, err)
}

func ids(docs []*entity.FiscalDocument) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}
