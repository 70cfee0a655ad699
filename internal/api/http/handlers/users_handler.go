package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/service"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// UsersHandler exposes self-service and administrative account endpoints.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, auth: authService}
}

// Me handles GET /user.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"user": dto.NewUserResponse(p.User)})
}

// UpdateProfile handles PUT /update-user-info.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.UserContext(), p.User.ID.Hex(), service.ProfileInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Profile updated", "user": dto.NewUserResponse(user)})
}

// UpdateAvatar handles PUT /update-user-avatar.
func (h *UsersHandler) UpdateAvatar(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.AvatarRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateAvatar(c.UserContext(), p.User.ID.Hex(), req.Avatar)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Avatar updated", "user": dto.NewUserResponse(user)})
}

// ChangePassword handles PUT /user/:userId/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), p.User.ID.Hex(), c.Params("userId"), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Password updated successfully"})
}

// GetUser handles GET /get-user-info/:userId and GET /users/:userId.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"user": dto.NewUserResponse(user)})
}

// Create handles POST /add-user-admin.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), adminInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "User created", "user": dto.NewUserResponse(user)})
}

// List handles GET /admin-all-users and GET /get-users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(users), "data": dto.NewUserList(users)})
}

// Get handles GET /single-user/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"user": dto.NewUserResponse(user)})
}

// Update handles PUT /admin-edit-users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.AdminUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), c.Params("id"), adminInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "User updated", "user": dto.NewUserResponse(user)})
}

// Delete handles DELETE /delete-user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "User deleted"})
}

// AddProperty handles POST /add-property.
func (h *UsersHandler) AddProperty(c *fiber.Ctx) error {
	var req dto.PropertyAssignmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.AssignProperty(c.UserContext(), req.UserID, req.PropertyID)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Property assigned", "user": dto.NewUserResponse(user)})
}

// RemoveProperty handles POST /remove-property.
func (h *UsersHandler) RemoveProperty(c *fiber.Ctx) error {
	var req dto.PropertyAssignmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.RemoveProperty(c.UserContext(), req.UserID, req.PropertyID)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Property removed", "user": dto.NewUserResponse(user)})
}

// UpdateAccess handles PUT /update-user-role.
func (h *UsersHandler) UpdateAccess(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.AccessRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.UserID == "" {
		return apperrors.NewMissingFields("userId")
	}
	user, err := h.users.UpdateAccess(c.UserContext(), p.User.ID.Hex(), req.UserID, service.AccessInput{
		Role:      req.Role,
		IsSuspend: req.IsSuspend,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "User access updated", "user": dto.NewUserResponse(user)})
}

func adminInput(req dto.AdminUserRequest) service.AdminUserInput {
	return service.AdminUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
}
