package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/papapumpkin/wellplan/internal/events"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/session"
	"github.com/papapumpkin/wellplan/internal/treeview"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

type wellCountRequest struct {
	Count *int `json:"count"`
}

type dropRequest struct {
	Dragging string `json:"dragging"`
	Drop     string `json:"drop"`
	Type     string `json:"type"`
}

type expandRequest struct {
	ID   string `json:"id"`
	Open bool   `json:"open"`
}

type toggleRequest struct {
	ID      string `json:"id"`
	Checked bool   `json:"checked"`
}

type viewsResponse struct {
	Components *treeview.Node      `json:"components"`
	Layout     *treeview.Node      `json:"layout"`
	Checked    session.CheckedKeys `json:"checked"`
	Expanded   []string            `json:"expanded"`
}

type layoutTreeResponse struct {
	Tree     json.RawMessage `json:"tree"`
	Expanded []string        `json:"expanded"`
}

func (s *Server) getLayout(w http.ResponseWriter, _ *http.Request) {
	ok(w, "", s.sess.Field())
}

func (s *Server) getLayoutTree(w http.ResponseWriter, r *http.Request) {
	tree, err := oilfield.Encode(s.sess.OilfieldTree())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	_, expanded := s.sess.Expanded()
	ok(w, "", layoutTreeResponse{Tree: tree, Expanded: expanded})
}

func (s *Server) setWellCount(w http.ResponseWriter, r *http.Request) {
	var req wellCountRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Count == nil {
		fail(w, http.StatusBadRequest, "count is required", nil)
		return
	}
	if err := s.sess.SetWellCount(*req.Count); err != nil {
		if errors.Is(err, oilfield.ErrNegativeWellCount) || errors.Is(err, oilfield.ErrTooManyWells) {
			fail(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		s.internalError(w, r, err)
		return
	}
	ok(w, "well count updated", s.sess.Field())
}

func (s *Server) loadPartition(w http.ResponseWriter, r *http.Request) {
	var req events.SiteData
	if !decode(w, r, &req) {
		return
	}
	s.sess.LoadPartition(req.Sites)
	ok(w, "partition loaded", s.sess.Field())
}

func (s *Server) drop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if !decode(w, r, &req) {
		return
	}
	dt, err := oilfield.ParseDropType(req.Type)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	n := s.sess.Drop(req.Dragging, req.Drop, dt)
	writeJSON(w, http.StatusOK, Envelope{
		Success: n.Moved(),
		Message: n.Message,
		Data:    map[string]any{"notice": n, "field": s.sess.Field()},
	})
}

func (s *Server) expand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if !decode(w, r, &req) {
		return
	}
	s.sess.SetExpanded(req.ID, req.Open)
	_, expanded := s.sess.Expanded()
	ok(w, "", expanded)
}

func (s *Server) getViews(w http.ResponseWriter, _ *http.Request) {
	views, _ := s.sess.Expanded()
	ok(w, "", viewsResponse{
		Components: s.sess.ComponentTree(),
		Layout:     s.sess.LayoutTree(),
		Checked:    s.sess.Checked(),
		Expanded:   views,
	})
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decode(w, r, &req) {
		return
	}
	handled := s.sess.Toggle(req.ID, req.Checked)
	writeJSON(w, http.StatusOK, Envelope{
		Success: handled,
		Data:    s.sess.Checked(),
	})
}

func (s *Server) getVisibility(w http.ResponseWriter, _ *http.Request) {
	snap := s.sess.Visibility()
	out := make(map[string]map[int]bool, len(snap))
	for _, c := range visibility.Channels {
		out[c.String()] = snap[c]
	}
	ok(w, "", out)
}
