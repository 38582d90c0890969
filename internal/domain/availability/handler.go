package availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability", h.GetDay, auth.RequireRole(auth.RoleDoctor, auth.RolePatient))

	manage := api.Group("", auth.RequireRole(auth.RoleDoctor))
	manage.POST("/availability/slots/open", h.OpenSlot)
	manage.POST("/availability/slots/close", h.CloseSlot)
}

type slotRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	TimeSlot string    `json:"time_slot"`
}

func (h *Handler) OpenSlot(c echo.Context) error {
	var req slotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.OpenSlot(c.Request().Context(), req.DoctorID, req.Date, req.TimeSlot); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "open"})
}

func (h *Handler) CloseSlot(c echo.Context) error {
	var req slotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err := h.svc.CloseSlot(c.Request().Context(), req.DoctorID, req.Date, req.TimeSlot)
	if err != nil {
		if errors.Is(err, ErrSlotBooked) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "closed"})
}

func (h *Handler) GetDay(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	day, err := h.svc.ListDay(c.Request().Context(), doctorID, c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, day)
}
