package insights

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glycolog/glycolog/internal/domain/records"
	"github.com/glycolog/glycolog/pkg/listquery"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/summary", h.GetSummary)
}

func (h *Handler) GetSummary(c echo.Context) error {
	p := listquery.FromContext(c)
	days := 0
	if p.Days != nil {
		days = *p.Days
	}
	summary, err := h.svc.Summarize(c.Request().Context(), days)
	if err != nil {
		if errors.Is(err, records.ErrStorageUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
