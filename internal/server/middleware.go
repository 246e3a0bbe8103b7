package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// rateLimitMiddleware applies the per-IP token bucket to the API surface.
func (s *Server) rateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiter.Allow(c.RealIP()) {
			return c.JSON(http.StatusTooManyRequests, errorResponse{
				Success: false,
				Error:   "Rate limit exceeded. Please wait before trying again.",
			})
		}
		return next(c)
	}
}
