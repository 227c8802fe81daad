package httpapi

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mcphersonwx/station-weather/internal/weather"
)

var validate = validator.New()

// Options carries presentation settings for the API handlers.
type Options struct {
	Station   string
	LocalZone *time.Location
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, opts Options) {
	api := app.Group("/api")

	api.Get("/current", func(c *fiber.Ctx) error {
		sample, ok := service.Latest()
		if !ok {
			// No data yet (e.g. before the first backfill completes).
			return c.JSON(fiber.Map{})
		}
		return c.JSON(weather.CurrentRow(sample, opts.Station, opts.LocalZone))
	})

	api.Get("/history", func(c *fiber.Ctx) error {
		var q historyQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(historyRows(service, opts, q.Hours))
	})

	api.Get("/history.csv", func(c *fiber.Ctx) error {
		rows := historyRows(service, opts, 0)

		var buf strings.Builder
		w := csv.NewWriter(&buf)
		_ = w.Write(weather.CSVHeader)
		for _, row := range rows {
			_ = w.Write(row.Record())
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render history")
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		return c.SendString(buf.String())
	})
}

// historyRows projects the stored window oldest-first, optionally narrowed to
// the trailing hours.
func historyRows(service *weather.Service, opts Options, hours int) []weather.Row {
	samples := service.History()

	if hours > 0 {
		cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
		filtered := samples[:0:0]
		for _, s := range samples {
			ts, err := time.Parse(time.RFC3339, s.Timestamp)
			if err != nil {
				continue
			}
			if !ts.Before(cutoff) {
				filtered = append(filtered, s)
			}
		}
		samples = filtered
	}

	rows := make([]weather.Row, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, weather.HistoryRow(s, opts.LocalZone))
	}
	return rows
}

// historyQuery holds the optional query parameters for the history endpoint.
type historyQuery struct {
	Hours int `validate:"min=1,max=48"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	raw := c.Query("hours")
	if raw == "" {
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("invalid hours; must be an integer")
	}
	h.Hours = n

	return validate.Struct(h)
}
