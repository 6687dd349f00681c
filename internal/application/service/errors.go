package service

import (
	"errors"
	"fmt"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Service level errors. Handlers map them onto status codes with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

const (
	minFiscalYear = 2000
	maxFiscalYear = 2100
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// validateScope checks the clinic/regime/year triple shared by checklist, alert and export calls
func validateScope(clinicID string, regime entity.TaxRegime, fiscalYear int) error {
	if clinicID == "" {
		return invalidf("clinic id is required")
	}
	if !regime.Valid() {
		return invalidf("unknown tax regime %q", regime)
	}
	return validateYear(fiscalYear)
}

func validateYear(fiscalYear int) error {
	if fiscalYear < minFiscalYear || fiscalYear > maxFiscalYear {
		return invalidf("fiscal year %d out of range [%d, %d]", fiscalYear, minFiscalYear, maxFiscalYear)
	}
	return nil
}

// storeErr translates a repository error. ErrNotFound keeps its meaning and a missing
// column rejects the request as input the store cannot hold. Anything else is reported
// as the store being unavailable.
func storeErr(op string, err error) error {
	if errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if errors.Is(err, port.ErrFieldUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
