package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/metrolens/metrolens/internal/census"
	"github.com/metrolens/metrolens/internal/institutions"
	"github.com/metrolens/metrolens/internal/wage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWage(w http.ResponseWriter, r *http.Request) {
	// Credentials are checked per request so the rest of the API keeps
	// working when only the wage upstream is unconfigured. Values are
	// never logged, only presence.
	if s.cfg == nil || !s.cfg.CareerOneStop.Configured() {
		zap.L().Error("server: wage credentials missing",
			zap.Bool("user_id_set", s.cfg != nil && s.cfg.CareerOneStop.UserID != ""),
			zap.Bool("token_set", s.cfg != nil && s.cfg.CareerOneStop.Token != ""),
		)
		writeError(w, http.StatusInternalServerError, "wage API credentials not configured")
		return
	}

	q := wage.Query{
		SOC:      r.URL.Query().Get("soc"),
		Location: r.URL.Query().Get("location"),
		AreaCode: r.URL.Query().Get("msaCode"),
	}

	record, attempts, err := s.wages.Resolve(r.Context(), q)
	if err != nil {
		var vErr *wage.ValidationError
		var missErr *wage.MissingAreaError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Error())
		case errors.As(err, &missErr):
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":     missErr.Error(),
				"available": missErr.Available,
				"attempts":  missErr.Attempts,
			})
		case errors.Is(err, wage.ErrNoWageData):
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":    "no wage data found",
				"attempts": attempts,
			})
		default:
			zap.L().Error("server: wage resolution failed",
				zap.String("soc", q.SOC),
				zap.String("location", q.Location),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "wage lookup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handlePopulation(w http.ResponseWriter, r *http.Request) {
	cbsa := r.URL.Query().Get("cbsa")
	if cbsa == "" {
		writeError(w, http.StatusBadRequest, "cbsa parameter is required")
		return
	}

	start := time.Now()

	if pop, ok := s.popCache.Get(cbsa); ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"cbsa":        cbsa,
			"name":        s.boundaries.Name(cbsa),
			"population":  pop,
			"vintage":     census.Vintage,
			"cached":      true,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return
	}

	var (
		name       string
		population int
		found      bool
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		name = s.boundaries.Name(cbsa)
		return nil
	})
	g.Go(func() error {
		var err error
		population, found, err = s.population.FetchPopulation(ctx, cbsa)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("server: population fetch failed", zap.String("cbsa", cbsa), zap.Error(err))
		writeError(w, http.StatusBadGateway, "population lookup failed")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no population data for this area")
		return
	}

	s.popCache.Put(cbsa, population)
	writeJSON(w, http.StatusOK, map[string]any{
		"cbsa":        cbsa,
		"name":        name,
		"population":  population,
		"vintage":     census.Vintage,
		"cached":      false,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleLAUS(w http.ResponseWriter, r *http.Request) {
	cbsa := r.URL.Query().Get("cbsa")
	if cbsa == "" {
		writeError(w, http.StatusBadRequest, "cbsa parameter is required")
		return
	}

	start := time.Now()

	points, cached := s.lausCache.Get(cbsa)
	name := ""
	if !cached {
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			name = s.boundaries.Name(cbsa)
			return nil
		})
		g.Go(func() error {
			var err error
			points, err = s.laus.FetchTimeseries(ctx, cbsa)
			return err
		})
		if err := g.Wait(); err != nil {
			zap.L().Error("server: laus fetch failed", zap.String("cbsa", cbsa), zap.Error(err))
			writeError(w, http.StatusBadGateway, "unemployment lookup failed")
			return
		}
		s.lausCache.Put(cbsa, points)
	} else {
		name = s.boundaries.Name(cbsa)
	}

	if len(points) == 0 {
		writeError(w, http.StatusNotFound, "no unemployment data for this area")
		return
	}

	// Points arrive oldest to newest.
	latest := points[len(points)-1]
	writeJSON(w, http.StatusOK, map[string]any{
		"cbsa":        cbsa,
		"name":        name,
		"timeseries":  points,
		"latest":      latest,
		"vintage":     "LAUS",
		"cached":      cached,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	if by == "" {
		by = "full"
	}

	var (
		payload any
		err     error
	)
	switch by {
	case "msa":
		payload, err = s.institutions.ByMSA()
	case "county":
		payload, err = s.institutions.ByCounty()
	case "full":
		payload, err = s.institutions.Full()
	default:
		writeError(w, http.StatusBadRequest, "by must be one of msa, county, full")
		return
	}

	if err != nil {
		if errors.Is(err, institutions.ErrDataUnavailable) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		zap.L().Error("server: institutions load failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "institution data load failed")
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	msaCode := r.URL.Query().Get("msa")
	soc := r.URL.Query().Get("soc")
	if msaCode == "" || soc == "" {
		writeError(w, http.StatusBadRequest, "msa and soc parameters are required")
		return
	}

	result, err := s.overlay.Compute(r.Context(), msaCode, soc)
	if err != nil {
		zap.L().Error("server: overlay failed",
			zap.String("msa", msaCode),
			zap.String("soc", soc),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "overlay computation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"wage":       s.wages.CacheStats(),
		"overlay":    s.overlay.CacheStats(),
		"population": s.popCache.Stats(),
		"laus":       s.lausCache.Stats(),
	})
}
