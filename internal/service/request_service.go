package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// MaintenanceInput carries maintenance request fields; nil fields are kept on update.
type MaintenanceInput struct {
	ServiceName  *string
	IssueDetails *string
	RequestDate  *string
	PropertyID   *string
	UserID       *string
	Status       *string
}

// EquipmentInput carries equipment request fields; nil fields are kept on update.
type EquipmentInput struct {
	ItemName     *string
	IssueDetails *string
	RequestDate  *string
	PropertyID   *string
	UserID       *string
	Status       *string
}

type serviceRequest[T any] interface {
	*T
	domain.ServiceRequest
}

// requestBook holds the lifecycle operations shared by both request kinds.
type requestBook[T any, P serviceRequest[T]] struct {
	repo       repository.Repository[T]
	resource   string
	title      func(P) string
	dispatcher events.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func (b *requestBook[T, P]) create(ctx context.Context, req P) error {
	if req.CurrentStatus() == "" {
		req.SetStatus(domain.RequestStatusPending)
	}
	if err := b.repo.Create(ctx, (*T)(req)); err != nil {
		return repoError(b.resource, err)
	}
	publishEvent(ctx, b.dispatcher, b.now, events.Event{
		Type:      events.EventRequestCreated,
		SubjectID: req.DocumentID().Hex(),
		Payload: events.RequestCreatedPayload{
			Kind:        req.Kind(),
			Title:       b.title(req),
			RequesterID: req.Requester(),
		},
	})
	return nil
}

func (b *requestBook[T, P]) list(ctx context.Context) ([]T, error) {
	out, err := b.repo.List(ctx)
	return out, repoError(b.resource, err)
}

func (b *requestBook[T, P]) get(ctx context.Context, id string) (*T, error) {
	req, err := b.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(b.resource, err)
	}
	return req, nil
}

func (b *requestBook[T, P]) update(ctx context.Context, id string, mutate func(P) error) (*T, error) {
	doc, err := b.get(ctx, id)
	if err != nil {
		return nil, err
	}
	req := P(doc)
	oldStatus := req.CurrentStatus()
	if err := mutate(req); err != nil {
		return nil, err
	}
	if err := b.repo.Update(ctx, doc); err != nil {
		return nil, repoError(b.resource, err)
	}
	b.publishStatusChange(ctx, req, oldStatus)
	return doc, nil
}

// setStatus overwrites the status regardless of the current one.
func (b *requestBook[T, P]) setStatus(ctx context.Context, id string, status domain.RequestStatus) (*T, error) {
	return b.update(ctx, id, func(req P) error {
		req.SetStatus(status)
		return nil
	})
}

func (b *requestBook[T, P]) delete(ctx context.Context, id string) error {
	return repoError(b.resource, b.repo.Delete(ctx, id))
}

func (b *requestBook[T, P]) publishStatusChange(ctx context.Context, req P, oldStatus domain.RequestStatus) {
	if oldStatus == req.CurrentStatus() {
		return
	}
	b.logger.Info("request status changed",
		zap.String("kind", string(req.Kind())),
		zap.String("request_id", req.DocumentID().Hex()),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(req.CurrentStatus())))
	publishEvent(ctx, b.dispatcher, b.now, events.Event{
		Type:      events.EventRequestStatusChanged,
		SubjectID: req.DocumentID().Hex(),
		Payload: events.RequestStatusChangedPayload{
			Kind:        req.Kind(),
			Title:       b.title(req),
			RequesterID: req.Requester(),
			OldStatus:   oldStatus,
			NewStatus:   req.CurrentStatus(),
		},
	})
}

// RequestService manages maintenance and equipment requests.
type RequestService struct {
	maintenance *requestBook[domain.MaintenanceRequest, *domain.MaintenanceRequest]
	equipment   *requestBook[domain.EquipmentRequest, *domain.EquipmentRequest]
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	MaintenanceRepo repository.MaintenanceRequestRepository
	EquipmentRepo   repository.EquipmentRequestRepository
	Dispatcher      events.Dispatcher
	Clock           func() time.Time
	Logger          *zap.Logger
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	now, logger := clockOrDefault(deps.Clock), loggerOrNop(deps.Logger)
	return &RequestService{
		maintenance: &requestBook[domain.MaintenanceRequest, *domain.MaintenanceRequest]{
			repo:       deps.MaintenanceRepo,
			resource:   "maintenance request",
			title:      func(r *domain.MaintenanceRequest) string { return r.ServiceName },
			dispatcher: deps.Dispatcher,
			now:        now,
			logger:     logger,
		},
		equipment: &requestBook[domain.EquipmentRequest, *domain.EquipmentRequest]{
			repo:       deps.EquipmentRepo,
			resource:   "equipment request",
			title:      func(r *domain.EquipmentRequest) string { return r.ItemName },
			dispatcher: deps.Dispatcher,
			now:        now,
			logger:     logger,
		},
	}
}

func (s *RequestService) CreateMaintenance(ctx context.Context, in MaintenanceInput) (*domain.MaintenanceRequest, error) {
	req := &domain.MaintenanceRequest{
		ServiceName:  strings.TrimSpace(deref(in.ServiceName)),
		IssueDetails: strings.TrimSpace(deref(in.IssueDetails)),
		RequestDate:  strings.TrimSpace(deref(in.RequestDate)),
		PropertyID:   strings.TrimSpace(deref(in.PropertyID)),
		UserID:       strings.TrimSpace(deref(in.UserID)),
		Status:       domain.RequestStatus(strings.TrimSpace(deref(in.Status))),
	}
	if missing := missingFields(
		"serviceName", req.ServiceName,
		"issueDetails", req.IssueDetails,
		"requestDate", req.RequestDate,
		"property_id", req.PropertyID,
		"user_id", req.UserID,
	); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	if err := checkStatusText(string(req.Status)); err != nil {
		return nil, err
	}
	if err := s.maintenance.create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) ListMaintenance(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	return s.maintenance.list(ctx)
}

func (s *RequestService) GetMaintenance(ctx context.Context, id string) (*domain.MaintenanceRequest, error) {
	return s.maintenance.get(ctx, id)
}

func (s *RequestService) UpdateMaintenance(ctx context.Context, id string, in MaintenanceInput) (*domain.MaintenanceRequest, error) {
	return s.maintenance.update(ctx, id, func(r *domain.MaintenanceRequest) error {
		for _, f := range []struct {
			dst   *string
			src   *string
			field string
		}{
			{&r.ServiceName, in.ServiceName, "serviceName"},
			{&r.IssueDetails, in.IssueDetails, "issueDetails"},
			{&r.RequestDate, in.RequestDate, "requestDate"},
			{&r.PropertyID, in.PropertyID, "property_id"},
			{&r.UserID, in.UserID, "user_id"},
		} {
			if err := applyText(f.dst, f.src, f.field); err != nil {
				return err
			}
		}
		return applyStatus(r, in.Status)
	})
}

func (s *RequestService) DeleteMaintenance(ctx context.Context, id string) error {
	return s.maintenance.delete(ctx, id)
}

func (s *RequestService) SetMaintenanceStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.MaintenanceRequest, error) {
	return s.maintenance.setStatus(ctx, id, status)
}

func (s *RequestService) CreateEquipment(ctx context.Context, in EquipmentInput) (*domain.EquipmentRequest, error) {
	req := &domain.EquipmentRequest{
		ItemName:     strings.TrimSpace(deref(in.ItemName)),
		IssueDetails: strings.TrimSpace(deref(in.IssueDetails)),
		RequestDate:  strings.TrimSpace(deref(in.RequestDate)),
		PropertyID:   strings.TrimSpace(deref(in.PropertyID)),
		UserID:       strings.TrimSpace(deref(in.UserID)),
		Status:       domain.RequestStatus(strings.TrimSpace(deref(in.Status))),
	}
	if missing := missingFields(
		"itemName", req.ItemName,
		"requestDate", req.RequestDate,
		"property_id", req.PropertyID,
		"user_id", req.UserID,
	); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	if err := checkStatusText(string(req.Status)); err != nil {
		return nil, err
	}
	if err := s.equipment.create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) ListEquipment(ctx context.Context) ([]domain.EquipmentRequest, error) {
	return s.equipment.list(ctx)
}

func (s *RequestService) GetEquipment(ctx context.Context, id string) (*domain.EquipmentRequest, error) {
	return s.equipment.get(ctx, id)
}

func (s *RequestService) UpdateEquipment(ctx context.Context, id string, in EquipmentInput) (*domain.EquipmentRequest, error) {
	return s.equipment.update(ctx, id, func(r *domain.EquipmentRequest) error {
		for _, f := range []struct {
			dst   *string
			src   *string
			field string
		}{
			{&r.ItemName, in.ItemName, "itemName"},
			{&r.RequestDate, in.RequestDate, "requestDate"},
			{&r.PropertyID, in.PropertyID, "property_id"},
			{&r.UserID, in.UserID, "user_id"},
		} {
			if err := applyText(f.dst, f.src, f.field); err != nil {
				return err
			}
		}
		// issueDetails is optional and may be cleared.
		if in.IssueDetails != nil {
			r.IssueDetails = strings.TrimSpace(*in.IssueDetails)
		}
		return applyStatus(r, in.Status)
	})
}

func (s *RequestService) DeleteEquipment(ctx context.Context, id string) error {
	return s.equipment.delete(ctx, id)
}

func (s *RequestService) SetEquipmentStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.EquipmentRequest, error) {
	return s.equipment.setStatus(ctx, id, status)
}

func applyStatus(req domain.ServiceRequest, status *string) error {
	if status == nil {
		return nil
	}
	v := strings.TrimSpace(*status)
	if v == "" {
		return apperrors.NewValidationError("status cannot be empty", nil)
	}
	if err := checkStatusText(v); err != nil {
		return err
	}
	req.SetStatus(domain.RequestStatus(v))
	return nil
}

// Statuses end up in notification subjects, so line breaks and other
// control characters are refused.
func checkStatusText(status string) error {
	if strings.IndexFunc(status, unicode.IsControl) >= 0 {
		return apperrors.NewValidationError("status contains invalid characters", nil)
	}
	return nil
}
