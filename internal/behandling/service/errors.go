package service

import (
	"fmt"

	"kabal/internal/behandling/models"
	dErrors "kabal/pkg/domain-errors"
)

// ValidationFailedError is the multi-section failure of the finalization gate.
// It unwraps to a CodeValidation error so dErrors.HasCode matches it.
type ValidationFailedError struct {
	Report models.ValidationReport
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("case failed validation before finalize: %d error(s)", len(e.Report.Items()))
}

func (e *ValidationFailedError) Unwrap() error {
	return dErrors.New(dErrors.CodeValidation, "validation failed")
}
