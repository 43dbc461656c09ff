package listquery

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
	MinDays      = 1
	MaxDays      = 90
)

// Params holds list-endpoint query parameters extracted from a request.
// Days is nil when the client did not ask for a trailing window.
type Params struct {
	Limit int
	Days  *int
}

// FromContext extracts and clamps list parameters from the echo context.
// `limit` defaults to DefaultLimit and is clamped to [1, MaxLimit];
// `days`, when present, is clamped to [MinDays, MaxDays].
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	p := Params{Limit: limit}

	if raw := c.QueryParam("days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil {
			p.Days = &days
			if days < MinDays {
				*p.Days = MinDays
			}
			if days > MaxDays {
				*p.Days = MaxDays
			}
		}
	}

	return p
}

// ClampDays bounds a window length to [MinDays, MaxDays], substituting
// fallback when days is not positive.
func ClampDays(days, fallback int) int {
	if days <= 0 {
		days = fallback
	}
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}
