package http

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the booking API. mw wraps the booking route only.
func RegisterRoutes(e *echo.Echo, h *Handler, ah *AppointmentHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/book-appointment", ah.BookAppointment, mw...)
	api.GET("/appointments", ah.ListAppointments)
	api.GET("/appointments/stats", ah.Stats)
	api.PUT("/appointments/:id/confirm", ah.ConfirmAppointment)
	api.DELETE("/appointments/:id", ah.DeleteAppointment)
}
