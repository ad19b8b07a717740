package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/events"
)

type reloadRequest struct {
	Dir string `json:"dir"`
}

func (s *Server) getContours(w http.ResponseWriter, _ *http.Request) {
	ok(w, "", dataset.FormatContour(s.sess.VisibleContours()))
}

func (s *Server) getSiteContours(w http.ResponseWriter, _ *http.Request) {
	ok(w, "", dataset.FormatContour(s.sess.VisibleSiteContours()))
}

func (s *Server) getCurves(w http.ResponseWriter, _ *http.Request) {
	ok(w, "", dataset.FormatCurves(s.sess.VisibleCurves()))
}

func (s *Server) getPartition(w http.ResponseWriter, _ *http.Request) {
	ok(w, "", s.sess.SitePartition())
}

func (s *Server) reloadDatasets(w http.ResponseWriter, r *http.Request) {
	var req reloadRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	dir := req.Dir
	if dir == "" {
		dir = s.datasetDir
	}
	if dir == "" {
		fail(w, http.StatusBadRequest, "dataset directory not configured", nil)
		return
	}
	if err := s.sess.ReloadDatasets(dir); err != nil {
		s.logger.Warn("dataset reload failed", zap.String("dir", dir), zap.Error(err))
		fail(w, http.StatusUnprocessableEntity, "dataset reload failed", err.Error())
		return
	}
	ok(w, "datasets reloaded", s.sess.SitePartition())
}

func (s *Server) getKickoffs(w http.ResponseWriter, _ *http.Request) {
	ok(w, "", s.sess.Kickoffs())
}

func (s *Server) updateKickoff(w http.ResponseWriter, r *http.Request) {
	var req events.CurvesData
	if !decode(w, r, &req) {
		return
	}
	if req.Index < 0 {
		fail(w, http.StatusBadRequest, "index must not be negative", req.Index)
		return
	}
	s.sess.UpdateKickoff(req)
	ok(w, "kickoff updated", req)
}
