package http

import (
	"net/http"

	"clinic-booking/internal/usecase/appointment"

	"github.com/labstack/echo/v4"
)

type AppointmentHandler struct{ uc *appointment.Usecase }

func NewAppointmentHandler(uc *appointment.Usecase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

type bookAppointmentReq struct {
	Name    string `json:"name"    validate:"notblank"`
	Email   string `json:"email"   validate:"notblank"`
	Phone   string `json:"phone"   validate:"notblank"`
	Service string `json:"service" validate:"notblank"`
	Date    string `json:"date"    validate:"notblank"`
	Time    string `json:"time"    validate:"notblank"`
	Notes   string `json:"notes"`
}

type bookAppointmentResp struct {
	Message string `json:"message"`
	ID      uint64 `json:"id"`
}

func (h *AppointmentHandler) BookAppointment(c echo.Context) error {
	var req bookAppointmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, MessageResponse{
			Message: msgMissingFields,
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Book(c.Request().Context(), appointment.BookInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, bookAppointmentResp{
		Message: "Appointment booked successfully",
		ID:      res.ID,
	})
}

func (h *AppointmentHandler) ListAppointments(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) ConfirmAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	}
	if err := h.uc.Confirm(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Appointment confirmed"})
}

func (h *AppointmentHandler) DeleteAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Appointment deleted"})
}

func (h *AppointmentHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
