package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nishantarora/portfolio/internal/platform/logging"
)

// Staged jobs run Validate → Perform → Verify → Archive.
//
// Nothing is written until the performed output has been verified, so a
// failing job leaves the previous artifact on disk untouched.

// Stage names a step of a staged job.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePerform  Stage = "perform"
	StageVerify   Stage = "verify"
	StageArchive  Stage = "archive"
)

// StageError wraps an error with the stage where it occurred.
type StageError struct {
	Stage Stage
	Cause error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// Job defines the stages of one staged job. Nil stages are skipped,
// except Perform which is required.
type Job[I, P any] struct {
	// Name identifies the job in logs.
	Name string

	// Validate checks the input before anything is produced.
	Validate func(ctx context.Context, input I) error

	// Perform produces the artifact in memory.
	Perform func(ctx context.Context, input I) (P, error)

	// Verify checks the artifact independently of how it was produced.
	Verify func(ctx context.Context, input I, performed P) error

	// Archive persists the verified artifact.
	Archive func(ctx context.Context, input I, performed P) error
}

// Run executes job against input and returns the archived artifact.
func Run[I, P any](ctx context.Context, logger *slog.Logger, job Job[I, P], input I) (P, error) {
	var zero P

	logger = logging.FromContextOr(ctx, logger).With(slog.String("job", job.Name))
	start := time.Now()

	if job.Validate != nil {
		if err := job.Validate(ctx, input); err != nil {
			logger.WarnContext(ctx, "validation failed", slog.Any("error", err))
			return zero, &StageError{Stage: StageValidate, Cause: err}
		}
	}

	performed, err := job.Perform(ctx, input)
	if err != nil {
		logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))
		return zero, &StageError{Stage: StagePerform, Cause: err}
	}

	if job.Verify != nil {
		if err := job.Verify(ctx, input, performed); err != nil {
			logger.ErrorContext(ctx, "verification failed", slog.Any("error", err))
			return zero, &StageError{Stage: StageVerify, Cause: err}
		}
	}

	if job.Archive != nil {
		if err := job.Archive(ctx, input, performed); err != nil {
			logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))
			return zero, &StageError{Stage: StageArchive, Cause: err}
		}
	}

	logger.DebugContext(ctx, "job completed", slog.Duration("duration", time.Since(start)))

	return performed, nil
}

// FailedStage extracts the stage from a staged job error.
func FailedStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}

	return "", false
}
