package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/mailer"
	"github.com/spec-kit/asset-service/internal/repository"
	"github.com/spec-kit/asset-service/internal/worker"
)

// JobQueue runs notification deliveries in the background.
type JobQueue interface {
	Submit(name string, job worker.Job) bool
}

// NotificationService reacts to domain events: it logs them and emails
// requesters when their request changes status.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	mail       Mailer
	queue      JobQueue
	logger     *zap.Logger
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	UserRepo   repository.UserRepository
	Mailer     Mailer
	Queue      JobQueue
	Logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		users:      deps.UserRepo,
		mail:       deps.Mailer,
		queue:      deps.Queue,
		logger:     loggerOrNop(deps.Logger),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.logEvent)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleRequestStatusChanged)
	n.dispatcher.Subscribe(events.EventAssetCreated, n.logEvent)
	n.dispatcher.Subscribe(events.EventAssetStatusChanged, n.logEvent)
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	return nil
}

type requestStatusMail struct {
	Name      string
	Kind      string
	Title     string
	OldStatus string
	Status    string
	RequestID string
}

func (n *NotificationService) handleRequestStatusChanged(ctx context.Context, event events.Event) error {
	_ = n.logEvent(ctx, event)

	payload, ok := event.Payload.(events.RequestStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if n.mail == nil || n.users == nil || payload.RequesterID == "" {
		return nil
	}

	job := func(jobCtx context.Context) error {
		user, err := n.users.GetByID(jobCtx, payload.RequesterID)
		if err != nil {
			return fmt.Errorf("load requester %s: %w", payload.RequesterID, err)
		}
		return n.mail.SendTemplate(jobCtx, user.Email, user.Name, mailer.TemplateRequestStatus, requestStatusMail{
			Name:      user.Name,
			Kind:      string(payload.Kind),
			Title:     payload.Title,
			OldStatus: string(payload.OldStatus),
			Status:    string(payload.NewStatus),
			RequestID: event.SubjectID,
		})
	}

	if n.queue == nil {
		return job(ctx)
	}
	if !n.queue.Submit("request_status_email:"+event.SubjectID, job) {
		return fmt.Errorf("notification queue rejected %s", event.ID)
	}
	return nil
}
