package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/talentboard/jobboard/docs"
	"github.com/talentboard/jobboard/internal/api/handler"
	"github.com/talentboard/jobboard/internal/api/middleware"
	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
	"github.com/talentboard/jobboard/pkg/logger"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Auth         ports.AuthService
	Profiles     ports.ProfileService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Avatars      ports.AvatarStorage
	Checks       []handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestContext)
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("3M"))

	requireAuth := middleware.Auth(deps.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Auth)
	adminOnly := middleware.RBAC(deps.Profiles, domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Profiles)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	adminHandler := handler.NewAdminJobHandler(deps.Jobs)
	applicationHandler := handler.NewApplicationHandler(deps.Applications)
	storageHandler := handler.NewStorageHandler(deps.Avatars)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/signout", authHandler.SignOut, requireAuth)
	e.GET("/auth/session", authHandler.Session, requireAuth)

	// --- Candidate routes ---
	v1 := e.Group("/v1")
	v1.GET("/me", profileHandler.Me, requireAuth)
	v1.GET("/profile", profileHandler.Get, requireAuth)
	v1.PUT("/profile", profileHandler.Save, requireAuth)
	v1.POST("/profile/completeness", profileHandler.Evaluate, requireAuth)
	v1.POST("/profile/avatar", profileHandler.UploadAvatar, requireAuth)
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.POST("/jobs/:id/applications", applicationHandler.Submit, requireAuth)
	v1.GET("/applications", applicationHandler.ListMine, requireAuth)

	// --- Admin routes ---
	admin := v1.Group("/admin", requireAuth, adminOnly)
	admin.GET("/jobs", adminHandler.List)
	admin.POST("/jobs", adminHandler.Create)
	admin.PUT("/jobs/:id", adminHandler.Update)
	admin.DELETE("/jobs/:id", adminHandler.Delete)
	admin.PATCH("/applications/:id", applicationHandler.SetStatus)

	// --- Dashboard delete endpoints (auth checked in the handler) ---
	e.POST("/api/delete-job", adminHandler.DeleteJob, optionalAuth)
	e.GET("/api/jobs/:id", adminHandler.GetAny)
	e.DELETE("/api/jobs/:id", adminHandler.DeleteByPath, optionalAuth)

	// --- Files ---
	e.GET("/storage/avatars/:name", storageHandler.Avatar)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestContext copies the request id set by the RequestID middleware into the
// request context so services can tag their own entries with it.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		}
		return next(c)
	}
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
