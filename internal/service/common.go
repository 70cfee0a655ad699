package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/asset-service/internal/blob"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/mailer"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// Mailer renders and delivers templated email.
type Mailer interface {
	SendTemplate(ctx context.Context, to, toName string, tmpl mailer.Template, data any) error
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the accepted shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// repoError maps repository sentinels onto the API error taxonomy.
func repoError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrInvalidID):
		return apperrors.NewInvalidID(resource)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", nil)
	default:
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return apperrors.NewInternalError(err)
	}
}

// missingFields returns the names whose values are blank, in order.
func missingFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

const (
	cleanupConcurrency = 4
	cleanupTimeout     = 30 * time.Second
)

// releaseBlobs deletes refs in parallel on a context that survives request
// cancellation. Failures are logged and never returned.
func releaseBlobs(ctx context.Context, store blob.Store, logger *zap.Logger, reason string, refs []domain.MediaRef) {
	if len(refs) == 0 {
		return
	}
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(cleanupCtx)
	g.SetLimit(cleanupConcurrency)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			if err := store.Delete(gctx, ref); err != nil {
				logger.Error("blob cleanup failed",
					zap.String("reason", reason),
					zap.String("public_id", ref.PublicID),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, now func() time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
