package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAddStation(w http.ResponseWriter, r *http.Request) {
	var req addStationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.AddStation(req.Name, *req.X, *req.Y, req.Lines); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleDeleteStation(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteStation(mux.Vars(r)["name"]); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Lines())
}

func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.AddLine(req.ID, req.Name, req.Color); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleLineStations(w http.ResponseWriter, r *http.Request) {
	stations, line, err := s.svc.LineStations(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"line": line, "stations": stations})
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req addEdgeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.AddEdgeToLine(req.From, req.To, req.Line); err != nil {
		s.fail(w, err)
		return
	}
	edge, err := s.svc.EdgeInfo(req.From, req.To)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

func (s *Server) handleEdgeInfo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	edge, err := s.svc.EdgeInfo(vars["from"], vars["to"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edge)
}

func (s *Server) handleFindRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	route, err := s.svc.FindRoute(req.From, req.To)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleCurrentRoute(w http.ResponseWriter, r *http.Request) {
	route, ok, err := s.svc.CurrentRoute()
	if err != nil {
		s.fail(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no route has been computed")
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Reload(s.ctx)
	if errors.Is(err, mapservice.ErrNoFeed) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// fail writes err with the status statusFor picks, logging server errors.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctxlog.FromContext(s.ctx).Error("Request failed.", "error", err)
	}
	writeError(w, status, err.Error())
}
