package server

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/papapumpkin/wellplan/internal/wellgeom"
	"github.com/papapumpkin/wellplan/internal/wellstore"
)

// defaultListLimit bounds GET /api/wells without a limit parameter.
const defaultListLimit = 50

// validated decodes and validates well data. On failure it has already
// answered and returns false.
func validated(w http.ResponseWriter, r *http.Request) (wellgeom.WellData, bool) {
	var d wellgeom.WellData
	if !decode(w, r, &d) {
		return d, false
	}
	if res := wellgeom.Validate(d); !res.Valid {
		fail(w, http.StatusBadRequest, "validation failed", res.Errors)
		return d, false
	}
	return wellgeom.Normalize(d), true
}

func (s *Server) validateWells(w http.ResponseWriter, r *http.Request) {
	d, good := validated(w, r)
	if !good {
		return
	}
	ok(w, "well data is valid", d)
}

func (s *Server) saveWells(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		fail(w, http.StatusServiceUnavailable, "well store not configured", nil)
		return
	}
	d, good := validated(w, r)
	if !good {
		return
	}
	rec, err := s.store.Save(r.Context(), d)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.logger.Info("well data saved", zap.Int64("id", rec.ID), zap.Int("wells", d.NumberOfWells))
	ok(w, "well data saved", rec)
}

func (s *Server) getWells(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		fail(w, http.StatusServiceUnavailable, "well store not configured", nil)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid id", r.PathValue("id"))
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, wellstore.ErrNotFound) {
		fail(w, http.StatusNotFound, "well data not found", id)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	ok(w, "", rec)
}

func (s *Server) listWells(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		fail(w, http.StatusServiceUnavailable, "well store not configured", nil)
		return
	}
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fail(w, http.StatusBadRequest, "invalid limit", v)
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	ok(w, "", recs)
}
