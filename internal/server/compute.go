package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/papapumpkin/wellplan/internal/fieldopt"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

func (s *Server) compute(w http.ResponseWriter, r *http.Request) {
	in := fieldopt.Input{Compute: fieldopt.DefaultComputeState()}
	if !decode(w, r, &in) {
		return
	}
	d := in.Wells
	if msgs := wellgeom.CheckCompute(d.NumberOfWells, d.TargetPoints, d.EntryDirections, d.DoglegPoints); len(msgs) > 0 {
		fail(w, http.StatusBadRequest, "compute input incomplete", msgs)
		return
	}
	req, err := fieldopt.Build(d, in.Compute)
	if err != nil {
		fail(w, http.StatusBadRequest, "compute input inconsistent", err.Error())
		return
	}
	if s.solver == nil {
		fail(w, http.StatusServiceUnavailable, "solver not configured", nil)
		return
	}
	resp, err := s.solver.Submit(r.Context(), req)
	if errors.Is(err, fieldopt.ErrSolver) {
		s.logger.Warn("solver rejected request", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Envelope{Error: "solver rejected request", Message: resp.Message})
		return
	}
	if err != nil {
		s.logger.Error("solver unreachable", zap.Error(err))
		fail(w, http.StatusBadGateway, "solver unreachable", nil)
		return
	}
	ok(w, resp.Message, resp.Data)
}
