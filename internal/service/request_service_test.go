package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/mailer"
	"github.com/spec-kit/asset-service/internal/repository/repositorytest"
	"github.com/spec-kit/asset-service/internal/worker"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

type requestEnv struct {
	maintenance *repositorytest.Memory[domain.MaintenanceRequest, *domain.MaintenanceRequest]
	equipment   *repositorytest.Memory[domain.EquipmentRequest, *domain.EquipmentRequest]
	events      *recordedEvents
	svc         *RequestService
}

func newRequestEnv(dispatcher events.Dispatcher) *requestEnv {
	env := &requestEnv{
		maintenance: repositorytest.NewMemory[domain.MaintenanceRequest](nil),
		equipment:   repositorytest.NewMemory[domain.EquipmentRequest](nil),
		events:      &recordedEvents{},
	}
	if dispatcher == nil {
		dispatcher = env.events
	}
	env.svc = NewRequestService(RequestDependencies{
		MaintenanceRepo: env.maintenance,
		EquipmentRepo:   env.equipment,
		Dispatcher:      dispatcher,
		Clock:           newFakeClock().Now,
	})
	return env
}

func maintenanceInput(userID string) MaintenanceInput {
	return MaintenanceInput{
		ServiceName:  strPtr("Plumbing"),
		IssueDetails: strPtr("Kitchen sink leaks"),
		RequestDate:  strPtr("2025-03-01"),
		PropertyID:   strPtr("65f0000000000000000000aa"),
		UserID:       strPtr(userID),
	}
}

func TestMaintenanceRequestLifecycle(t *testing.T) {
	env := newRequestEnv(nil)
	ctx := context.Background()

	req, err := env.svc.CreateMaintenance(ctx, maintenanceInput("65f0000000000000000000bb"))
	if err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}
	if req.Status != domain.RequestStatusPending {
		t.Fatalf("status = %q, want pending", req.Status)
	}
	if got := env.events.ofType(events.EventRequestCreated); len(got) != 1 {
		t.Fatalf("created events = %d, want 1", len(got))
	}

	approved, err := env.svc.SetMaintenanceStatus(ctx, req.ID.Hex(), domain.RequestStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != domain.RequestStatusApproved {
		t.Fatalf("status = %q", approved.Status)
	}

	// Transitions are not restricted: an approved request can still be cancelled.
	cancelled, err := env.svc.SetMaintenanceStatus(ctx, req.ID.Hex(), domain.RequestStatusCancelled)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "Cancelled" {
		t.Fatalf("status = %q, want Cancelled", cancelled.Status)
	}

	changes := env.events.ofType(events.EventRequestStatusChanged)
	if len(changes) != 2 {
		t.Fatalf("status events = %d, want 2", len(changes))
	}
	payload := changes[1].Payload.(events.RequestStatusChangedPayload)
	if payload.OldStatus != domain.RequestStatusApproved || payload.NewStatus != domain.RequestStatusCancelled {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	// Re-applying the same status publishes nothing.
	if _, err := env.svc.SetMaintenanceStatus(ctx, req.ID.Hex(), domain.RequestStatusCancelled); err != nil {
		t.Fatalf("cancel again: %v", err)
	}
	if len(env.events.ofType(events.EventRequestStatusChanged)) != 2 {
		t.Fatal("unchanged status should not publish")
	}

	if err := env.svc.DeleteMaintenance(ctx, req.ID.Hex()); err != nil {
		t.Fatalf("DeleteMaintenance: %v", err)
	}
	_, err = env.svc.GetMaintenance(ctx, req.ID.Hex())
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestMaintenanceRequestValidation(t *testing.T) {
	env := newRequestEnv(nil)
	ctx := context.Background()

	_, err := env.svc.CreateMaintenance(ctx, MaintenanceInput{ServiceName: strPtr("Plumbing")})
	requireCode(t, err, apperrors.CodeValidation)
	if err.Error() != "Missing required fields: issueDetails, requestDate, property_id, user_id" {
		t.Fatalf("message = %q", err.Error())
	}

	req, err := env.svc.CreateMaintenance(ctx, maintenanceInput("u1"))
	if err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}
	updated, err := env.svc.UpdateMaintenance(ctx, req.ID.Hex(), MaintenanceInput{IssueDetails: strPtr("Also the tap")})
	if err != nil {
		t.Fatalf("UpdateMaintenance: %v", err)
	}
	if updated.IssueDetails != "Also the tap" || updated.ServiceName != "Plumbing" {
		t.Fatalf("unexpected request: %+v", updated)
	}

	_, err = env.svc.UpdateMaintenance(ctx, req.ID.Hex(), MaintenanceInput{Status: strPtr(" ")})
	requireCode(t, err, apperrors.CodeValidation)

	_, err = env.svc.UpdateMaintenance(ctx, req.ID.Hex(), MaintenanceInput{Status: strPtr("done\r\nBcc: victim@example.com")})
	requireCode(t, err, apperrors.CodeValidation)
	if stored, _ := env.svc.GetMaintenance(ctx, req.ID.Hex()); stored.Status != domain.RequestStatusPending {
		t.Fatalf("status = %q, want unchanged", stored.Status)
	}

	injected := maintenanceInput("u1")
	injected.Status = strPtr("pending\nX-Injected: 1")
	_, err = env.svc.CreateMaintenance(ctx, injected)
	requireCode(t, err, apperrors.CodeValidation)

	_, err = env.svc.GetMaintenance(ctx, "bad-id")
	requireCode(t, err, apperrors.CodeInvalidID)
}

func TestEquipmentRequestLifecycle(t *testing.T) {
	env := newRequestEnv(nil)
	ctx := context.Background()

	req, err := env.svc.CreateEquipment(ctx, EquipmentInput{
		ItemName:    strPtr("Ladder"),
		RequestDate: strPtr("2025-03-02"),
		PropertyID:  strPtr("p1"),
		UserID:      strPtr("u1"),
	})
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	if req.Status != domain.RequestStatusPending || req.IssueDetails != "" {
		t.Fatalf("unexpected request: %+v", req)
	}

	updated, err := env.svc.UpdateEquipment(ctx, req.ID.Hex(), EquipmentInput{Status: strPtr("approved")})
	if err != nil {
		t.Fatalf("UpdateEquipment: %v", err)
	}
	if updated.Status != domain.RequestStatusApproved {
		t.Fatalf("status = %q", updated.Status)
	}

	list, err := env.svc.ListEquipment(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListEquipment = %d, %v", len(list), err)
	}

	_, err = env.svc.CreateEquipment(ctx, EquipmentInput{})
	requireCode(t, err, apperrors.CodeValidation)
	if err.Error() != "Missing required fields: itemName, requestDate, property_id, user_id" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestStatusChangeEmailsRequester(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewUsers()
	requester := &domain.User{Name: "Uma", Email: "uma@example.com", IsVerified: true}
	if err := users.Create(ctx, requester); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tests := []struct {
		name  string
		queue func() (JobQueue, func())
	}{
		{
			name:  "inline delivery",
			queue: func() (JobQueue, func()) { return nil, func() {} },
		},
		{
			name: "worker delivery",
			queue: func() (JobQueue, func()) {
				w := worker.NewNotificationWorker(zap.NewNop(), 1, 4, 0)
				w.Start(ctx)
				return w, w.Stop
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mail := &fakeMailer{}
			dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
			queue, stop := tc.queue()
			NewNotificationService(NotificationDependencies{
				Dispatcher: dispatcher,
				UserRepo:   users,
				Mailer:     mail,
				Queue:      queue,
			}).RegisterHandlers()

			env := newRequestEnv(dispatcher)
			req, err := env.svc.CreateMaintenance(ctx, maintenanceInput(requester.ID.Hex()))
			if err != nil {
				t.Fatalf("CreateMaintenance: %v", err)
			}
			if _, err := env.svc.SetMaintenanceStatus(ctx, req.ID.Hex(), domain.RequestStatusApproved); err != nil {
				t.Fatalf("approve: %v", err)
			}
			stop()

			if len(mail.sent) != 1 {
				t.Fatalf("mails = %d, want 1", len(mail.sent))
			}
			sent := mail.sent[0]
			data := sent.data.(requestStatusMail)
			if sent.to != "uma@example.com" || sent.tmpl != mailer.TemplateRequestStatus {
				t.Fatalf("unexpected mail: %+v", sent)
			}
			if data.Status != "approved" || data.OldStatus != "pending" || data.Title != "Plumbing" || data.RequestID != req.ID.Hex() {
				t.Fatalf("unexpected mail data: %+v", data)
			}
		})
	}
}

func TestStatusChangeWithUnknownRequesterDoesNotFail(t *testing.T) {
	ctx := context.Background()
	mail := &fakeMailer{}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	NewNotificationService(NotificationDependencies{
		Dispatcher: dispatcher,
		UserRepo:   repositorytest.NewUsers(),
		Mailer:     mail,
	}).RegisterHandlers()

	env := newRequestEnv(dispatcher)
	req, err := env.svc.CreateMaintenance(ctx, maintenanceInput("not-a-user"))
	if err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}
	if _, err := env.svc.SetMaintenanceStatus(ctx, req.ID.Hex(), domain.RequestStatusCancelled); err != nil {
		t.Fatalf("status change must succeed when notification fails: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("mails = %d, want 0", len(mail.sent))
	}
}
