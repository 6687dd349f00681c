package container

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "fiscal.db")
	cfg.Database.MigrationsDir = "../../migrations"
	cfg.Storage.Dir = filepath.Join(dir, "files")
	return cfg
}

func startContainer(t *testing.T, opts ...Option) *Container {
	t.Helper()
	c, err := NewContainer(testConfig(t), zap.NewNop(), opts...)
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() {
		if c.Ready() {
			_ = c.Close()
		}
	})
	return c
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(DefaultConfig(), nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Storage.Dir = ""
	_, err = NewContainer(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "storage.dir")
}

func TestContainer_StartAndHealth(t *testing.T) {
	c := startContainer(t)

	assert.True(t, c.Ready())
	require.NotNil(t, c.Services())
	assert.NotNil(t, c.Services().Checklist)
	assert.NotNil(t, c.Services().Alert)
	assert.NotNil(t, c.Services().Document)
	assert.NotNil(t, c.Services().Reminder)
	assert.NotNil(t, c.Services().Export)
	assert.NotNil(t, c.Registry())

	health := c.Health(context.Background())
	assert.True(t, health.Overall)
	assert.True(t, health.Components["database"].Healthy)

	assert.Error(t, c.Start(context.Background()), "second start must fail")
}

func TestContainer_CloseTwice(t *testing.T) {
	c := startContainer(t)

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(context.Background()))
}

func TestContainer_UploadThenEvaluate(t *testing.T) {
	today := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	c := startContainer(t, WithClock(port.ClockFunc(func() time.Time { return today })))
	ctx := context.Background()
	sub := "cnpj"

	doc, err := c.Services().Document.Upload(ctx, service.UploadRequest{
		ClinicID:    "clinic-1",
		FileName:    "cartao-cnpj.pdf",
		MimeType:    "application/pdf",
		Content:     []byte("%PDF-1.4"),
		TaxRegime:   entity.RegimeSimples,
		Category:    entity.CategoryIdentificacao,
		Subcategory: &sub,
		FiscalYear:  2024,
	})
	require.NoError(t, err)
	assert.True(t, c.FileStorage().Exists(ctx, doc.FilePath))

	report, err := c.Services().Checklist.EvaluateChecklist(ctx, "clinic-1", entity.RegimeSimples, 2024)
	require.NoError(t, err)

	var found bool
	for _, section := range report.Sections {
		for _, item := range section.Items {
			if item.Category == entity.CategoryIdentificacao && item.Subcategory == "cnpj" {
				found = true
				assert.True(t, item.IsComplete)
				require.Len(t, item.Documents, 1)
				assert.Equal(t, doc.ID, item.Documents[0].ID)
			}
		}
	}
	assert.True(t, found)
	assert.Equal(t, 1, report.Completed)

	alerts, err := c.Services().Alert.ComputeAlerts(ctx, "clinic-1", entity.RegimeSimples, 2024)
	require.NoError(t, err)
	assert.Empty(t, alerts.SkippedSources)
}

func TestContainer_AnnualDocumentUnderOtherRegimeSuppressesAlert(t *testing.T) {
	today := time.Date(2024, time.November, 15, 9, 0, 0, 0, time.UTC)
	c := startContainer(t, WithClock(port.ClockFunc(func() time.Time { return today })))
	ctx := context.Background()
	sub := "alvara"

	_, err := c.Services().Document.Upload(ctx, service.UploadRequest{
		ClinicID:    "clinic-1",
		FileName:    "alvara.pdf",
		MimeType:    "application/pdf",
		Content:     []byte("%PDF-1.4"),
		TaxRegime:   entity.RegimeLucroPresumido,
		Category:    entity.CategoryIdentificacao,
		Subcategory: &sub,
		FiscalYear:  2024,
	})
	require.NoError(t, err)

	report, err := c.Services().Alert.ComputeAlerts(ctx, "clinic-1", entity.RegimeSimples, 2024)
	require.NoError(t, err)

	ids := make([]string, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		ids = append(ids, a.ID)
	}
	assert.NotContains(t, ids, "missing-identificacao-alvara")
	assert.Contains(t, ids, "missing-especificos-defis")
}

func TestZapLoggerAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	adapter := &zapLoggerAdapter{logger: zap.New(core)}

	adapter.Warn("source skipped", "clinic_id", "c1", "error", errors.New("boom"), 42, "ignored", "dangling")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "source skipped", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "c1", fields["clinic_id"])
	assert.Equal(t, "boom", fields["error"])
	assert.Len(t, fields, 2)
}
