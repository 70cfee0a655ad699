package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/asset-service/internal/blob"
	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/mailer"
	"github.com/spec-kit/asset-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

type sentMail struct {
	to   string
	tmpl mailer.Template
	data any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendTemplate(_ context.Context, to, _ string, tmpl mailer.Template, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, tmpl: tmpl, data: data})
	return nil
}

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no mail sent")
	}
	data, ok := m.sent[len(m.sent)-1].data.(otpMail)
	if !ok {
		t.Fatalf("last mail data is %T, want otpMail", m.sent[len(m.sent)-1].data)
	}
	return data.Code
}

// fakeBlobs uploads successfully until failAt (1-based) is reached.
type fakeBlobs struct {
	mu        sync.Mutex
	uploads   []domain.MediaRef
	deleted   []string
	deletedAs map[string]string
	failAt    int
	failOn    func(opts blob.UploadOptions) bool
	deleteErr error
}

func (b *fakeBlobs) Upload(_ context.Context, _ string, opts blob.UploadOptions) (domain.MediaRef, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.uploads) + 1
	if (b.failAt > 0 && n == b.failAt) || (b.failOn != nil && b.failOn(opts)) {
		return domain.MediaRef{}, errors.New("upload rejected")
	}
	ref := domain.MediaRef{
		PublicID:     fmt.Sprintf("%s/blob-%d", opts.Folder, n),
		URL:          fmt.Sprintf("https://cdn.example.com/%s/blob-%d", opts.Folder, n),
		ResourceType: string(opts.ResourceType),
	}
	b.uploads = append(b.uploads, ref)
	return ref, nil
}

func (b *fakeBlobs) Delete(ctx context.Context, ref domain.MediaRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, ref.PublicID)
	if b.deletedAs == nil {
		b.deletedAs = map[string]string{}
	}
	b.deletedAs[ref.PublicID] = ref.ResourceType
	return b.deleteErr
}

func (b *fakeBlobs) deletedSet() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]bool, len(b.deleted))
	for _, id := range b.deleted {
		out[id] = true
	}
	return out
}

type fakeRevocations struct {
	revoked map[string]time.Time
	err     error
}

func (f *fakeRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]time.Time{}
	}
	f.revoked[id] = until
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := f.revoked[id]
	return ok, f.err
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedEvents) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordedEvents) ofType(t events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type authEnv struct {
	users       *repositorytest.Users
	mail        *fakeMailer
	clock       *fakeClock
	revocations *fakeRevocations
	otp         *OTPService
	auth        *AuthService
}

func newAuthEnv() *authEnv {
	env := &authEnv{
		users:       repositorytest.NewUsers(),
		mail:        &fakeMailer{},
		clock:       newFakeClock(),
		revocations: &fakeRevocations{},
	}
	env.otp = NewOTPService(OTPDependencies{
		UserRepo: env.users,
		Mailer:   env.mail,
		TTL:      10 * time.Minute,
		Clock:    env.clock.Now,
	})
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}}
	env.auth = NewAuthService(cfg, AuthDependencies{
		UserRepo:    env.users,
		OTP:         env.otp,
		Revocations: env.revocations,
	})
	return env
}

func (e *authEnv) registerVerified(t *testing.T, email, password string) *domain.User {
	t.Helper()
	ctx := context.Background()
	if _, err := e.auth.Register(ctx, RegisterInput{
		Name: "Resident", Email: email, Password: password, PhoneNumber: "555-0100", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, _, err := e.auth.VerifyAccount(ctx, email, e.mail.lastCode(t))
	if err != nil {
		t.Fatalf("VerifyAccount: %v", err)
	}
	return user
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	de := apperrors.ToDomainError(err)
	if de.Code != code {
		t.Fatalf("error code = %s (%v), want %s", de.Code, err, code)
	}
}
