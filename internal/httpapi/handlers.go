package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"migmap/internal/atlas"
	"migmap/internal/flows"
	"migmap/internal/stats"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to status codes: unknown countries are 404, invalid
// arguments are 400, anything else is 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, atlas.ErrUnknownCountry):
		status = http.StatusNotFound
	case errors.Is(err, atlas.ErrInvalidMode),
		errors.Is(err, atlas.ErrInvalidView),
		errors.Is(err, stats.ErrInvalidRange),
		errors.Is(err, flows.ErrInvalidDirection),
		errors.Is(err, errBadQuery),
		errors.As(err, &verrs):
		status = http.StatusBadRequest
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

var errBadQuery = errors.New("bad query parameter")

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", errBadQuery, name, raw)
	}
	return n, nil
}

// queryInts parses a comma-separated list of integers.
func queryInts(r *http.Request, name string) ([]int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a list of integers", errBadQuery, name, raw)
		}
		out = append(out, n)
	}
	return out, nil
}

type yearQuery struct {
	Year int `json:"year" validate:"required,gte=1900,lte=2100"`
}

type partnersQuery struct {
	Year  int `json:"year" validate:"required,gte=1900,lte=2100"`
	Limit int `json:"limit" validate:"gte=0,lte=250"`
}

func (h *Handler) parseYear(r *http.Request) (int, error) {
	year, err := queryInt(r, "year")
	if err != nil {
		return 0, err
	}
	q := yearQuery{Year: year}
	if err := h.validate.Struct(q); err != nil {
		return 0, err
	}
	return q.Year, nil
}

func (h *Handler) country(w http.ResponseWriter, r *http.Request) {
	c, err := h.ds.Find(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, c)
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.ds.Info())
}

func (h *Handler) years(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"years":            h.ds.Years(),
		"evolution_ranges": h.ds.EvolutionRanges(),
	})
}

func (h *Handler) initialState(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.ds.InitialState())
}

func (h *Handler) classifyChoropleth(w http.ResponseWriter, r *http.Request) {
	year, err := h.parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, h.ds.ClassifyChoropleth(year))
}

func (h *Handler) classifyAnamorphic(w http.ResponseWriter, r *http.Request) {
	mode, err := atlas.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	rng, err := stats.ParseYearRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if mode != atlas.ModeEvolution {
		if year, err = h.parseYear(r); err != nil {
			writeError(w, r, err)
			return
		}
	}

	c, err := h.ds.ClassifyAnamorphic(mode, year, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, c)
}

func (h *Handler) partners(w http.ResponseWriter, r *http.Request) {
	dir, err := flows.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := partnersQuery{Year: year, Limit: limit}
	if err := h.validate.Struct(q); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.ds.Find(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.ds.CountryTopPartners(c.Code, q.Year, dir, q.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

func (h *Handler) timeseries(w http.ResponseWriter, r *http.Request) {
	dir, err := flows.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	years, err := queryInts(r, "years")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.ds.Find(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.ds.CountryTimeseries(c.Code, dir, years)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	year, err := h.parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rng, err := stats.ParseYearRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.ds.Find(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.ds.CountrySummary(c.Code, year, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, s)
}

// renderView decodes a view state, fills unset fields from the initial state and returns the
// full snapshot.
func (h *Handler) renderView(w http.ResponseWriter, r *http.Request) {
	state := h.ds.InitialState()
	if err := render.DecodeJSON(r.Body, &state); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadQuery, err))
		return
	}

	view, err := atlas.ParseView(string(state.View))
	if err != nil {
		writeError(w, r, err)
		return
	}
	mode, err := atlas.ParseMode(string(state.Mode))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := state.EvolutionRange.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	state.View = view
	state = state.WithMode(mode)
	if state.Country != "" {
		c, err := h.ds.Find(state.Country)
		if err != nil {
			writeError(w, r, err)
			return
		}
		state.Country = c.Code
	}

	snap, err := h.ds.Render(state)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}
