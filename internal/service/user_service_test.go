package service

import (
	"context"
	"testing"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

type userEnv struct {
	users      *repositorytest.Users
	properties *repositorytest.Memory[domain.Property, *domain.Property]
	blobs      *fakeBlobs
	svc        *UserService
}

func newUserEnv() *userEnv {
	env := &userEnv{
		users:      repositorytest.NewUsers(),
		properties: repositorytest.NewMemory[domain.Property](nil),
		blobs:      &fakeBlobs{},
	}
	env.svc = NewUserService(UserDependencies{
		UserRepo:     env.users,
		PropertyRepo: env.properties,
		Blobs:        env.blobs,
		BcryptCost:   4,
	})
	return env
}

func (e *userEnv) seedUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := e.svc.Create(context.Background(), AdminUserInput{
		Name: strPtr("Resident"), Email: strPtr(email), Password: strPtr("secret1"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return user
}

func TestAdminCreateUser(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()

	user := env.seedUser(t, "Vic@Example.com")
	if !user.IsVerified || user.Role != domain.RoleUser || user.Email != "vic@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err := env.svc.Create(ctx, AdminUserInput{Name: strPtr("Vic"), Email: strPtr("vic@example.com"), Password: strPtr("secret1")})
	requireCode(t, err, apperrors.CodeConflict)

	_, err = env.svc.Create(ctx, AdminUserInput{Name: strPtr("X"), Email: strPtr("x@example.com"), Password: strPtr("secret1"), Role: strPtr("owner")})
	requireCode(t, err, apperrors.CodeValidation)

	admin, err := env.svc.Create(ctx, AdminUserInput{
		Name: strPtr("Wes"), Email: strPtr("wes@example.com"), Password: strPtr("secret1"), Role: strPtr(string(domain.RoleMaintenanceAdmin)),
	})
	if err != nil || !admin.IsAdmin() {
		t.Fatalf("create admin = %+v, %v", admin, err)
	}
}

func TestUpdateProfileKeepsOmittedFields(t *testing.T) {
	env := newUserEnv()
	user := env.seedUser(t, "xena@example.com")

	updated, err := env.svc.UpdateProfile(context.Background(), user.ID.Hex(), ProfileInput{Address: strPtr("9 Elm St")})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Address != "9 Elm St" || updated.Name != "Resident" {
		t.Fatalf("unexpected user: %+v", updated)
	}

	_, err = env.svc.UpdateProfile(context.Background(), user.ID.Hex(), ProfileInput{Name: strPtr("")})
	requireCode(t, err, apperrors.CodeValidation)
}

func TestUpdateAvatarReleasesPrevious(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()
	user := env.seedUser(t, "yan@example.com")

	first, err := env.svc.UpdateAvatar(ctx, user.ID.Hex(), smallImage)
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	firstID := first.Avatar.PublicID

	second, err := env.svc.UpdateAvatar(ctx, user.ID.Hex(), smallImage)
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	if second.Avatar.PublicID == firstID {
		t.Fatal("avatar should be replaced")
	}
	if !env.blobs.deletedSet()[firstID] || len(env.blobs.deleted) != 1 {
		t.Fatalf("deleted = %v, want only %s", env.blobs.deleted, firstID)
	}

	_, err = env.svc.UpdateAvatar(ctx, user.ID.Hex(), "")
	requireCode(t, err, apperrors.CodeValidation)
}

func TestUpdateAccess(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()
	admin := env.seedUser(t, "zed@example.com")
	user := env.seedUser(t, "abe@example.com")
	yes, no := true, false

	suspended, err := env.svc.UpdateAccess(ctx, admin.ID.Hex(), user.ID.Hex(), AccessInput{IsSuspend: &yes, Reason: strPtr("unpaid fees")})
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if !suspended.IsSuspended || suspended.SuspendReason != "unpaid fees" {
		t.Fatalf("unexpected user: %+v", suspended)
	}

	restored, err := env.svc.UpdateAccess(ctx, admin.ID.Hex(), user.ID.Hex(), AccessInput{IsSuspend: &no, Role: strPtr(string(domain.RoleMaintenanceAdmin))})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsSuspended || restored.SuspendReason != "" || !restored.IsAdmin() {
		t.Fatalf("unexpected user: %+v", restored)
	}

	_, err = env.svc.UpdateAccess(ctx, admin.ID.Hex(), admin.ID.Hex(), AccessInput{IsSuspend: &yes})
	requireCode(t, err, apperrors.CodeValidation)
}

func TestPropertyAssignment(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()
	user := env.seedUser(t, "bea@example.com")
	property := &domain.Property{CategoryName: "Residential", SubCategoryName: "Apartment", FlatNumber: "1A"}
	if err := env.properties.Create(ctx, property); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	uid, pid := user.ID.Hex(), property.ID.Hex()

	assigned, err := env.svc.AssignProperty(ctx, uid, pid)
	if err != nil {
		t.Fatalf("AssignProperty: %v", err)
	}
	if !assigned.HasProperty(property.ID) {
		t.Fatal("property should be assigned")
	}
	_, err = env.svc.AssignProperty(ctx, uid, pid)
	requireCode(t, err, apperrors.CodeConflict)

	_, err = env.svc.AssignProperty(ctx, uid, "65f000000000000000000000")
	requireCode(t, err, apperrors.CodeNotFound)

	removed, err := env.svc.RemoveProperty(ctx, uid, pid)
	if err != nil {
		t.Fatalf("RemoveProperty: %v", err)
	}
	if removed.HasProperty(property.ID) {
		t.Fatal("property should be removed")
	}
	_, err = env.svc.RemoveProperty(ctx, uid, pid)
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestDeleteUserReleasesAvatar(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()
	user := env.seedUser(t, "cal@example.com")
	withAvatar, err := env.svc.UpdateAvatar(ctx, user.ID.Hex(), smallImage)
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}

	if err := env.svc.Delete(ctx, user.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !env.blobs.deletedSet()[withAvatar.Avatar.PublicID] {
		t.Fatal("avatar should be released")
	}
	_, err = env.svc.Get(ctx, user.ID.Hex())
	requireCode(t, err, apperrors.CodeNotFound)
}
