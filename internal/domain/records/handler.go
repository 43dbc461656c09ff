package records

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glycolog/glycolog/pkg/listquery"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/glucose", h.CreateGlucose)
	api.GET("/glucose", h.ListGlucose)

	api.POST("/meals", h.CreateMeal)
	api.GET("/meals", h.ListMeals)

	api.POST("/medications", h.CreateMedication)
	api.GET("/medications", h.ListMedications)

	api.POST("/activities", h.CreateActivity)
	api.GET("/activities", h.ListActivities)

	api.POST("/reminders", h.CreateReminder)
	api.GET("/reminders", h.ListReminders)

	api.GET("/collections", h.ListCollections)
}

func (h *Handler) CreateGlucose(c echo.Context) error {
	var g GlucoseReading
	if err := c.Bind(&g); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.create(c, &g)
}

func (h *Handler) ListGlucose(c echo.Context) error {
	return h.list(c, KindGlucoseReading, true)
}

func (h *Handler) CreateMeal(c echo.Context) error {
	var m Meal
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.create(c, &m)
}

func (h *Handler) ListMeals(c echo.Context) error {
	return h.list(c, KindMeal, true)
}

func (h *Handler) CreateMedication(c echo.Context) error {
	var m MedicationLog
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.create(c, &m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	return h.list(c, KindMedicationLog, true)
}

func (h *Handler) CreateActivity(c echo.Context) error {
	var a Activity
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.create(c, &a)
}

func (h *Handler) ListActivities(c echo.Context) error {
	return h.list(c, KindActivity, true)
}

func (h *Handler) CreateReminder(c echo.Context) error {
	var r Reminder
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.create(c, &r)
}

// ListReminders ignores the days parameter since reminders carry no
// timestamp.
func (h *Handler) ListReminders(c echo.Context) error {
	return h.list(c, KindReminder, false)
}

func (h *Handler) ListCollections(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"collections": h.svc.Collections(),
	})
}

func (h *Handler) create(c echo.Context, rec Record) error {
	id, err := h.svc.Insert(c.Request().Context(), rec)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]string{"inserted_id": id.String()})
}

func (h *Handler) list(c echo.Context, kind Kind, withDays bool) error {
	p := listquery.FromContext(c)
	var since *time.Time
	if withDays && p.Days != nil {
		t := time.Now().UTC().AddDate(0, 0, -*p.Days)
		since = &t
	}
	items, err := h.svc.ListRecent(c.Request().Context(), kind, p.Limit, since)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*StoredRecord{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}
