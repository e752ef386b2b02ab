package httpserver

import (
	"filmorate/pkg/sentry"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and its storage answers
// @Tags health
// @Success 200 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.StoragePing != nil {
		if err := s.StoragePing(c.Request().Context()); err != nil {
			s.Logger.Warnw("storage ping failed", "request_id", requestID(c), "error", err)
			sentry.WithContext(c).WithTags(map[string]string{"component": "storage"}).Warningf("storage ping failed: %v", err)
			return writeError(c, http.StatusServiceUnavailable, "storage unavailable", "", err)
		}
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "OK",
	})
}
