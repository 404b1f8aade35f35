package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gqlcanvas/pkg/buildinfo"
	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
	"github.com/matzehuels/gqlcanvas/pkg/pipeline"
	"github.com/matzehuels/gqlcanvas/pkg/store"
)

// canvasResponse is returned by create, get and patch.
type canvasResponse struct {
	ID       string              `json:"id"`
	Mode     layout.Mode         `json:"mode"`
	Canvas   *graph.ParsedResult `json:"canvas"`
	Warnings []string            `json:"warnings"`
}

func newCanvasResponse(snap *store.Snapshot) canvasResponse {
	warnings := snap.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return canvasResponse{
		ID:       snap.ID,
		Mode:     snap.Mode,
		Canvas:   snap.Canvas,
		Warnings: warnings,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return body, nil
}

// handleCreateCanvas builds a canvas from a GraphQL request body and stores it.
func (s *Server) handleCreateCanvas(w http.ResponseWriter, r *http.Request) {
	mode := s.mode
	if m := r.URL.Query().Get("mode"); m != "" {
		parsed, err := layout.ParseMode(m)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid mode %q", m))
			return
		}
		mode = parsed
	}

	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Build(r.Context(), body, pipeline.Options{Mode: mode})
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := store.NewSnapshot(result.Canvas, result.Warnings, s.ttl)
	snap.Mode = mode
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/canvases/"+snap.ID)
	writeJSON(w, http.StatusCreated, newCanvasResponse(snap))
}

// loadSnapshot validates the {id} parameter and fetches the snapshot.
func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (*store.Snapshot, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateCanvasID(id); err != nil {
		s.writeError(w, err)
		return nil, false
	}
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return snap, true
}

func (s *Server) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCanvasResponse(snap))
}

func (s *Server) handleDeleteCanvas(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateCanvasID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePatchNode applies a renderer callback to one node.
func (s *Server) handlePatchNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateCanvasID(id); err != nil {
		s.writeError(w, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var patch graph.Patch
	if err := json.Unmarshal(body, &patch); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidPatch, err, "patch body is not valid JSON"))
		return
	}

	snap, err := store.PatchNode(r.Context(), s.store, id, chi.URLParam(r, "nodeID"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCanvasResponse(snap))
}

func (s *Server) handleCanvasOutput(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	s.writeOutput(w, snap.Canvas)
}

// handleProjectOutput projects a canvas posted by the renderer without
// touching the store.
func (s *Server) handleProjectOutput(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	canvas, err := graph.UnmarshalResult(body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid canvas"))
		return
	}
	s.writeOutput(w, canvas)
}

func (s *Server) writeOutput(w http.ResponseWriter, canvas *graph.ParsedResult) {
	data, err := graph.MarshalOutput(canvas)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleRender draws a stored canvas. Query parameters: detailed (bool) and
// scale (PNG only).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}}
	q := r.URL.Query()
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid detailed %q", v))
			return
		}
		opts.Detailed = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = f
	}

	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	opts.Mode = snap.Mode

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), snap.Canvas, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}
