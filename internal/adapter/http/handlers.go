package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

type healthResp struct {
	Status string `json:"status"`
}

// Health is a liveness probe only; it does not touch the store.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResp{Status: "Server is running"})
}
