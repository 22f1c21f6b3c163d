package router

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/config"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/handler"
	"cultofdrive/internal/ratelimit"
	"cultofdrive/internal/storage"
)

// uploadOverhead leaves room for multipart framing on top of the file itself.
const uploadOverhead = 1 << 20

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Car          *handler.CarHandler
	Interaction  *handler.InteractionHandler
	Analytics    *handler.AnalyticsHandler
	Profile      *handler.ProfileHandler
	Notification *handler.NotificationHandler
	Listing      *handler.ListingHandler
	Report       *handler.ReportHandler
	Upload       *handler.UploadHandler
	Subscribe    *handler.SubscribeHandler
	Social       *handler.SocialHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	jwtService *auth.JWTService,
	subscribeLimiter middleware.RateLimiterStore,
	h Handlers,
) {
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, auth.AdminKeyHeader},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.BodyLimit(strconv.FormatInt((cfg.MaxUploadBytes+uploadOverhead)/1024, 10) + "K"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.Storage.Driver == config.StorageLocal {
		base := cfg.Storage.PublicBaseURL
		if base == "" {
			base = storage.DefaultLocalPublicBase
		}
		if strings.HasPrefix(base, "/") {
			e.Static(base, cfg.Storage.LocalPath)
		}
	}

	api := e.Group("/api", auth.OptionalUser(jwtService))

	// Cars
	api.GET("/cars", h.Car.ListCars)
	api.POST("/cars", h.Car.CreateCar)
	api.GET("/cars/stats", h.Analytics.CarStats)
	api.GET("/cars/:id", h.Car.GetCar)
	api.PATCH("/cars/:id", h.Car.UpdateCar)
	api.DELETE("/cars/:id", h.Car.DeleteCar)

	// Interactions
	api.GET("/cars/:id/favorites", h.Interaction.GetFavorites)
	api.POST("/cars/:id/favorites", h.Interaction.AddFavorite)
	api.DELETE("/cars/:id/favorites", h.Interaction.RemoveFavorite)
	api.GET("/cars/:id/likes", h.Interaction.GetLikes)
	api.POST("/cars/:id/likes", h.Interaction.AddLike)
	api.DELETE("/cars/:id/likes", h.Interaction.RemoveLike)
	api.GET("/cars/:id/comments", h.Interaction.ListComments)
	api.POST("/cars/:id/comments", h.Interaction.AddComment)
	api.DELETE("/cars/:id/comments", h.Interaction.DeleteComment)

	api.POST("/analytics/track-view", h.Analytics.TrackView)

	// Profiles and notifications
	api.GET("/profiles/:slug", h.Profile.GetProfile)
	api.PUT("/profiles", h.Profile.UpsertProfile)
	api.GET("/notifications", h.Notification.ListNotifications)
	api.PATCH("/notifications/:id/read", h.Notification.MarkRead)
	api.POST("/notifications/read-all", h.Notification.MarkAllRead)

	// Marketplace
	api.GET("/marketplace", h.Listing.ListListings)
	api.POST("/marketplace", h.Listing.CreateListing)
	api.GET("/marketplace/:id", h.Listing.GetListing)
	api.PATCH("/marketplace/:id", h.Listing.UpdateListing)
	api.DELETE("/marketplace/:id", h.Listing.DeleteListing)

	api.POST("/reports", h.Report.CreateReport)
	api.POST("/upload", h.Upload.Upload)
	api.POST("/subscribe", h.Subscribe.Subscribe, ratelimit.Middleware(subscribeLimiter))
	api.GET("/instagram", h.Social.Instagram)
	api.GET("/social-posts", h.Social.SocialPosts)

	// Admin routes (require x-admin-key)
	admin := api.Group("/admin", auth.AdminKey(cfg.AdminKey))

	admin.GET("/cars", h.Car.AdminListCars)
	admin.PATCH("/cars/:id", h.Car.AdminUpdateCar)
	admin.DELETE("/cars/:id", h.Car.AdminDeleteCar)

	admin.GET("/marketplace", h.Listing.AdminListListings)
	admin.PATCH("/marketplace/:id", h.Listing.AdminUpdateListing)
	admin.DELETE("/marketplace/:id", h.Listing.AdminDeleteListing)

	admin.GET("/users", h.Profile.AdminListUsers)
	admin.DELETE("/users/:id", h.Profile.AdminDeleteUser)

	admin.GET("/reports", h.Report.AdminListReports)
	admin.PATCH("/reports/:id", h.Report.AdminUpdateReport)

	admin.GET("/analytics", h.Analytics.Dashboard)
	admin.POST("/upload", h.Upload.AdminUpload)
	admin.POST("/social-posts/sync", h.Social.Sync)
}

// ErrorHandler renders every error as {"error": message}. Server errors are logged.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := http.StatusInternalServerError, err.Error()
		var he *echo.HTTPError
		if stderrors.As(err, &he) {
			status = he.Code
			switch m := he.Message.(type) {
			case errors.ErrorResponse:
				message = m.Error
			case string:
				message = m
			case error:
				message = m.Error()
			default:
				message = http.StatusText(he.Code)
			}
		} else if httpErr := errors.MapErrorToHTTP(err); httpErr != nil {
			status, message = httpErr.StatusCode, httpErr.Message
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, errors.ErrorResponse{Error: message})
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
