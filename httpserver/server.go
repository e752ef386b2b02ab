package httpserver

import (
	"context"
	"filmorate/errs"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/mpa"
	"filmorate/pkg/config"
	"filmorate/pkg/logger"
	"filmorate/pkg/sentry"
	"filmorate/user"
	"fmt"
	"net/http"
	"strings"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// RateLimit is requests per second per client IP, zero disables it.
	RateLimit float64

	Logger *zap.SugaredLogger

	// StoragePing reports whether the storage backend is reachable. Nil skips the check.
	StoragePing func(ctx context.Context) error

	FilmService  film.Service
	UserService  user.Service
	GenreService genre.Service
	MpaService   mpa.Service
}

func Default(cfg *config.Config, options ...Options) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		RateLimit:    cfg.RateLimit,
		Logger:       logger.NOOPLogger,
	}

	if cfg.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	for _, fn := range options {
		fn(&s)
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.handleHTTPError
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterFilmRoutes()
	s.RegisterUserRoutes()
	s.RegisterGenreRoutes()
	s.RegisterMpaRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Router.Use(s.requestLogger())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			s.Logger.Infow("request",
				"request_id", requestID(c),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"size", c.Response().Size,
				"duration", time.Since(start),
			)
			return nil
		}
	}
}

// handleHTTPError maps application errors to appropriate HTTP status codes
func (s *Server) handleHTTPError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	// Check if it's an Echo HTTPError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		// Map application error codes to HTTP status codes
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	var info string
	if code >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(), "request_id", requestID(c))
		sentry.WithContext(c).Error(err)
		if id := requestID(c); id != "" {
			info = "request_id: " + id
		}
	} else {
		s.Logger.Debugw(message, "request_id", requestID(c), "status", code)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := writeError(c, code, message, info, err); err != nil {
			s.Logger.Errorw("write error response", "error", err)
		}
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
