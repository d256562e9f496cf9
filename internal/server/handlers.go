package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Babdus/protolanguage-v2/pkg/buildinfo"
	"github.com/Babdus/protolanguage-v2/pkg/errors"
	"github.com/Babdus/protolanguage-v2/pkg/io"
	"github.com/Babdus/protolanguage-v2/pkg/pipeline"
	"github.com/Babdus/protolanguage-v2/pkg/storage"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: "dendro",
		Version: buildinfo.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	root, err := io.ReadJSON(r.Body)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), root, opts)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	format := opts.Formats[0]
	rec := storage.NewRecord(result.TreeHash, format, opts.LinkStyle, result.Artifacts[format])
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeErr(w, errors.Wrap(errors.ErrCodeInternal, err, "store render"))
		return
	}

	w.Header().Set("Content-Type", rec.ContentType)
	w.Header().Set("Location", "/renders/"+rec.ID)
	w.Header().Set("X-Render-Id", rec.ID)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(rec.Data)
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", rec.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Data)
}

func (s *Server) handleGetMeta(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	rec.Data = nil
	writeJSON(w, http.StatusOK, rec)
}

// requestOptions merges query parameters over the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults.Copy()
	opts.Formats = []string{pipeline.FormatSVG}
	q := r.URL.Query()

	if v := q.Get("style"); v != "" {
		opts.LinkStyle = v
	}
	if v := q.Get("format"); v != "" {
		opts.Formats = []string{v}
	}
	if v := q.Get("viz"); v != "" {
		opts.VizType = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("radius"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "radius: %q is not a number", v)
		}
		opts.Radius = f
	}
	for name, dst := range map[string]*bool{
		"branch_lengths": &opts.BranchLengths,
		"leaves_aligned": &opts.LeavesAligned,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
			}
			*dst = b
		}
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
