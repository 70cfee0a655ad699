package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/blob"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

const (
	avatarFolder = "avatar"
	avatarWidth  = 400
)

// ProfileInput carries self-service profile changes; nil fields are kept.
type ProfileInput struct {
	Name        *string
	PhoneNumber *string
	Address     *string
}

// AdminUserInput describes an account created or edited by an administrator.
// On edit, nil fields are kept.
type AdminUserInput struct {
	Name        *string
	Email       *string
	Password    *string
	Role        *string
	PhoneNumber *string
	Address     *string
}

// AccessInput changes role and suspension state.
type AccessInput struct {
	Role      *string
	IsSuspend *bool
	Reason    *string
}

// UserService manages accounts on behalf of their owners and administrators.
type UserService struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
	blobs      blob.Store
	bcryptCost int
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo     repository.UserRepository
	PropertyRepo repository.PropertyRepository
	Blobs        blob.Store
	BcryptCost   int
	Logger       *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		properties: deps.PropertyRepo,
		blobs:      deps.Blobs,
		bcryptCost: deps.BcryptCost,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Get returns the account with id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("user", err)
	}
	return user, nil
}

// List returns every account, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, repoError("user", err)
	}
	return users, nil
}

// UpdateProfile applies the caller's own profile changes. Role changes are
// not possible here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyText(&user.Name, in.Name, "name"); err != nil {
		return nil, err
	}
	if err := applyText(&user.PhoneNumber, in.PhoneNumber, "phoneNumber"); err != nil {
		return nil, err
	}
	if err := applyText(&user.Address, in.Address, "address"); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoError("user", err)
	}
	return user, nil
}

// UpdateAvatar uploads a new avatar, stores it and releases the previous one.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, payload string) (*domain.User, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, apperrors.NewMissingFields("avatar")
	}
	if blob.DecodedSize(payload) > MaxImageBytes {
		return nil, apperrors.NewValidationError("avatar exceeds 1MB size limit", nil)
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	ref, err := s.blobs.Upload(ctx, payload, blob.UploadOptions{Folder: avatarFolder, ResourceType: blob.ResourceImage, Width: avatarWidth})
	if err != nil {
		s.logger.Warn("avatar upload failed", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.NewValidationError("failed to upload avatar", nil)
	}

	previous := user.Avatar
	user.Avatar = &ref
	if err := s.users.Update(ctx, user); err != nil {
		releaseBlobs(ctx, s.blobs, s.logger, "avatar persist failed", []domain.MediaRef{ref})
		return nil, repoError("user", err)
	}
	if previous != nil && previous.PublicID != "" {
		releaseBlobs(ctx, s.blobs, s.logger, "avatar replaced", []domain.MediaRef{*previous})
	}
	return user, nil
}

// Create adds a verified account on behalf of an administrator.
func (s *UserService) Create(ctx context.Context, in AdminUserInput) (*domain.User, error) {
	name, email, password := deref(in.Name), repository.NormalizeEmail(deref(in.Email)), deref(in.Password)
	if missing := missingFields("name", name, "email", email, "password", password); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	if !ValidEmail(email) {
		return nil, apperrors.NewValidationError("invalid email format", nil)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	role, err := parseRole(in.Role, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   true,
		PhoneNumber:  strings.TrimSpace(deref(in.PhoneNumber)),
		Address:      strings.TrimSpace(deref(in.Address)),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, repoError("user", err)
	}
	return user, nil
}

// Update edits an account on behalf of an administrator.
func (s *UserService) Update(ctx context.Context, id string, in AdminUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyText(&user.Name, in.Name, "name"); err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := repository.NormalizeEmail(*in.Email)
		if !ValidEmail(email) {
			return nil, apperrors.NewValidationError("invalid email format", nil)
		}
		user.Email = email
	}
	if in.Password != nil && *in.Password != "" {
		if err := auth.ValidatePassword(*in.Password); err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	if in.Role != nil {
		role, err := parseRole(in.Role, user.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, repoError("user", err)
	}
	return user, nil
}

// UpdateAccess changes role and suspension of another account.
func (s *UserService) UpdateAccess(ctx context.Context, callerID, id string, in AccessInput) (*domain.User, error) {
	if callerID == id && in.IsSuspend != nil && *in.IsSuspend {
		return nil, apperrors.NewValidationError("you cannot suspend your own account", nil)
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role, err := parseRole(in.Role, user.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.IsSuspend != nil {
		user.IsSuspended = *in.IsSuspend
		if !user.IsSuspended {
			user.SuspendReason = ""
		}
	}
	if in.Reason != nil && user.IsSuspended {
		user.SuspendReason = strings.TrimSpace(*in.Reason)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoError("user", err)
	}
	s.logger.Info("user access updated",
		zap.String("user_id", id),
		zap.String("role", string(user.Role)),
		zap.Bool("suspended", user.IsSuspended))
	return user, nil
}

// Delete removes an account and releases its avatar.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return repoError("user", err)
	}
	if user.Avatar != nil && user.Avatar.PublicID != "" {
		releaseBlobs(ctx, s.blobs, s.logger, "user deleted", []domain.MediaRef{*user.Avatar})
	}
	return nil
}

// AssignProperty links an existing property to the account.
func (s *UserService) AssignProperty(ctx context.Context, userID, propertyID string) (*domain.User, error) {
	if missing := missingFields("userId", userID, "propertyId", propertyID); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, repoError("property", err)
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasProperty(property.ID) {
		return nil, apperrors.NewConflict("property already assigned to user", nil)
	}
	user.Properties = append(user.Properties, property.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoError("user", err)
	}
	return user, nil
}

// RemoveProperty unlinks a property from the account.
func (s *UserService) RemoveProperty(ctx context.Context, userID, propertyID string) (*domain.User, error) {
	if missing := missingFields("userId", userID, "propertyId", propertyID); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	pid, err := repository.ParseID(propertyID)
	if err != nil {
		return nil, repoError("property", err)
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasProperty(pid) {
		return nil, apperrors.NewNotFound("property assignment", nil)
	}
	kept := user.Properties[:0:0]
	for _, existing := range user.Properties {
		if existing != pid {
			kept = append(kept, existing)
		}
	}
	user.Properties = kept
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoError("user", err)
	}
	return user, nil
}

func parseRole(raw *string, fallback domain.Role) (domain.Role, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return fallback, nil
	}
	role := domain.Role(strings.TrimSpace(*raw))
	if !role.Valid() {
		return "", apperrors.NewValidationError("invalid role", map[string]any{
			"allowed": []domain.Role{domain.RoleUser, domain.RoleMaintenanceAdmin},
		})
	}
	return role, nil
}

// applyText sets *dst when src is provided; a provided value may not be blank.
func applyText(dst *string, src *string, field string) error {
	if src == nil {
		return nil
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		return apperrors.NewValidationError(field+" cannot be empty", nil)
	}
	*dst = v
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
