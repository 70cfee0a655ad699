package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/api/http/handlers"
	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIPrefix      string
	UploadsDir     string
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Assets         *handlers.AssetsHandler
	Catalog        *handlers.CatalogHandler
	Properties     *handlers.PropertiesHandler
	Requests       *handlers.RequestsHandler
	AuthMiddleware *auth.AuthMiddleware
	Limiter        ratelimit.Limiter
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)
	if cfg.UploadsDir != "" {
		app.Static("/uploads", cfg.UploadsDir)
	}

	api := app.Group(cfg.APIPrefix)
	limited := func(scope string) fiber.Handler { return RateLimit(cfg.Limiter, scope, cfg.Logger) }
	authed := cfg.AuthMiddleware.Handle
	admin := auth.Authorize(domain.RoleMaintenanceAdmin)

	api.Post("/register-user", limited("register"), cfg.Auth.Register)
	api.Post("/verify-otp", limited("otp-verify"), cfg.Auth.VerifyOTP)
	api.Post("/resent-otp", limited("otp"), cfg.Auth.ResendOTP)
	api.Post("/login", limited("login"), cfg.Auth.Login)
	api.Post("/login-with-email-only", limited("otp"), cfg.Auth.RequestLoginCode)
	api.Post("/login-with-email-only-otp", limited("otp-verify"), cfg.Auth.LoginWithCode)
	api.Post("/forgot-password", limited("otp"), cfg.Auth.ForgotPassword)
	api.Post("/reset-password", limited("otp-verify"), cfg.Auth.ResetPassword)
	api.Post("/logout", authed, cfg.Auth.Logout)

	api.Get("/user", authed, cfg.Users.Me)
	api.Put("/update-user-info", authed, cfg.Users.UpdateProfile)
	api.Put("/update-user-avatar", authed, cfg.Users.UpdateAvatar)
	api.Put("/user/:userId/password", authed, cfg.Users.ChangePassword)
	api.Get("/get-user-info/:userId", authed, cfg.Users.GetUser)
	api.Get("/users/:userId", authed, cfg.Users.GetUser)

	api.Post("/add-user-admin", authed, admin, cfg.Users.Create)
	api.Get("/admin-all-users", authed, admin, cfg.Users.List)
	api.Get("/get-users", authed, admin, cfg.Users.List)
	api.Get("/single-user/:id", authed, admin, cfg.Users.Get)
	api.Put("/admin-edit-users/:id", authed, admin, cfg.Users.Update)
	api.Delete("/delete-user/:id", authed, admin, cfg.Users.Delete)
	api.Post("/add-property", authed, admin, cfg.Users.AddProperty)
	api.Post("/remove-property", authed, admin, cfg.Users.RemoveProperty)
	api.Put("/update-user-role", authed, admin, cfg.Users.UpdateAccess)

	api.Post("/assets", cfg.Assets.Create)
	api.Get("/assets", cfg.Assets.List)
	api.Get("/assets-single/:id", cfg.Assets.Get)
	api.Put("/assets/:id", cfg.Assets.Update)
	api.Delete("/assets/:id", cfg.Assets.Delete)
	api.Put("/deprecated-asset/:id", cfg.Assets.Deprecate)
	api.Put("/disposed-asset/:id", cfg.Assets.Dispose)

	api.Get("/asset-categories", cfg.Catalog.ListCategories)
	api.Get("/asset-categories/:id", cfg.Catalog.GetCategory)
	api.Post("/asset-categories", authed, cfg.Catalog.CreateCategory)
	api.Put("/asset-categories/:id", authed, cfg.Catalog.UpdateCategory)
	api.Delete("/asset-categories/:id", authed, cfg.Catalog.DeleteCategory)
	api.Get("/asset-subcategories", cfg.Catalog.ListSubcategories)
	api.Get("/asset-subcategories/:id", cfg.Catalog.GetSubcategory)
	api.Post("/asset-create-subcategories", authed, cfg.Catalog.CreateSubcategory)
	api.Put("/asset-subcategories/:id", authed, cfg.Catalog.UpdateSubcategory)
	api.Delete("/asset-subcategories/:id", authed, cfg.Catalog.DeleteSubcategory)
	api.Get("/asset-items", cfg.Catalog.ListItems)
	api.Get("/asset-items/:id", cfg.Catalog.GetItem)
	api.Post("/asset-items", authed, cfg.Catalog.CreateItem)
	api.Put("/asset-items/:id", authed, cfg.Catalog.UpdateItem)
	api.Delete("/asset-items/:id", authed, cfg.Catalog.DeleteItem)

	api.Post("/create-properties", authed, cfg.Properties.Create)
	api.Get("/get-properties", authed, cfg.Properties.List)
	api.Get("/get-properties/:id", authed, cfg.Properties.Get)
	api.Put("/update-properties/:id", authed, cfg.Properties.Update)
	api.Delete("/delete-properties/:id", authed, cfg.Properties.Delete)

	api.Post("/request-m", cfg.Requests.CreateMaintenance)
	api.Get("/request-m", cfg.Requests.ListMaintenance)
	api.Get("/request-m/:id", cfg.Requests.GetMaintenance)
	api.Put("/request-m/:id", cfg.Requests.UpdateMaintenance)
	api.Delete("/request-m/:id", cfg.Requests.DeleteMaintenance)
	api.Patch("/request-m/:id/cancel", cfg.Requests.CancelMaintenance)
	api.Put("/approve-request-m/:id", cfg.Requests.ApproveMaintenance)

	api.Post("/request-e", cfg.Requests.CreateEquipment)
	api.Get("/request-e", cfg.Requests.ListEquipment)
	api.Get("/request-e/:id", cfg.Requests.GetEquipment)
	api.Put("/request-e/:id", cfg.Requests.UpdateEquipment)
	api.Delete("/request-e/:id", cfg.Requests.DeleteEquipment)
	api.Patch("/request-e/:id/cancel", cfg.Requests.CancelEquipment)
	api.Put("/approve-request-e/:id", cfg.Requests.ApproveEquipment)

	app.Use(NotFound)
}
