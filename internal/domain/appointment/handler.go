package appointment

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/domain/availability"
	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/pkg/pagination"
	"github.com/clinicore/clinicore/pkg/timeslot"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	shared := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RolePatient))
	shared.GET("/appointments", h.List)
	shared.GET("/appointments/:id", h.Get)
	shared.POST("/appointments/:id/cancel", h.Cancel)

	api.POST("/appointments", h.Book, auth.RequireRole(auth.RolePatient))

	doctor := api.Group("", auth.RequireRole(auth.RoleDoctor))
	doctor.POST("/appointments/:id/confirm", h.Confirm)
	doctor.POST("/appointments/:id/complete", h.Complete)
}

type bookRequest struct {
	DoctorID         uuid.UUID `json:"doctor_id"`
	PatientID        uuid.UUID `json:"patient_id"`
	Date             string    `json:"date"`
	TimeSlot         string    `json:"time_slot"`
	ConsultationType string    `json:"consultation_type"`
	Notes            string    `json:"notes"`
}

func (h *Handler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := &Appointment{
		DoctorID:         req.DoctorID,
		PatientID:        req.PatientID,
		Date:             req.Date,
		TimeSlot:         req.TimeSlot,
		ConsultationType: req.ConsultationType,
		Notes:            req.Notes,
	}
	if err := h.svc.Record(c.Request().Context(), a); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateBooking),
			errors.Is(err, ErrDuplicatePatientDay):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrPastDate),
			errors.Is(err, ErrSlotNotOpen),
			errors.Is(err, availability.ErrInvalidDate),
			errors.Is(err, timeslot.ErrMalformedTime):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	if v := c.QueryParam("doctor_id"); v != "" {
		doctorID, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		items, total, err := h.svc.ListForDoctor(ctx, doctorID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
	}
	if v := c.QueryParam("patient_id"); v != "" {
		patientID, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		items, total, err := h.svc.ListForPatient(ctx, patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
	}
	return echo.NewHTTPError(http.StatusBadRequest, "doctor_id or patient_id is required")
}

func (h *Handler) Confirm(c echo.Context) error {
	return h.updateStatus(c, h.svc.Confirm)
}

func (h *Handler) Complete(c echo.Context) error {
	return h.updateStatus(c, h.svc.Complete)
}

func (h *Handler) Cancel(c echo.Context) error {
	return h.updateStatus(c, h.svc.Cancel)
}

func (h *Handler) updateStatus(c echo.Context, fn func(ctx context.Context, id uuid.UUID) error) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := fn(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}
