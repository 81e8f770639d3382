// Package server exposes the batch converter over HTTP: a minimal upload
// form plus a small JSON API with per-job download URLs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bft-labs/sasport/internal/adapters/fs"
	"github.com/bft-labs/sasport/internal/app"
	"github.com/bft-labs/sasport/internal/domain"
	"github.com/bft-labs/sasport/internal/ports"
)

// maxUploadBytes is the in-memory budget for one multipart request before
// parts spill to temp files. XPORT files for regulatory submissions are
// rarely more than a few hundred MB in total.
const maxUploadBytes = 512 << 20

// Server handles the web form surface for batch conversion.
// One batch runs at a time; concurrent conversion requests get 409.
type Server struct {
	codec    ports.Codec
	packager ports.Packager
	logger   ports.Logger

	// batchMu serializes batch runs (single-flight).
	batchMu sync.Mutex

	jobs *jobStore
}

// New creates a Server converting through the given codec.
func New(codec ports.Codec, packager ports.Packager, logger ports.Logger) *Server {
	return &Server{
		codec:    codec,
		packager: packager,
		logger:   logger,
		jobs:     newJobStore(),
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/convert", s.handleConvert)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleJob)
	mux.HandleFunc("GET /download/{id}/{name}", s.handleDownload)
	return mux
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", ports.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// handleConvert runs one batch from either uploaded files or a server-side
// directory path, packages the successes, and stores the outcome as a job.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	items, err := s.resolveRequest(r)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.batchMu.TryLock() {
		writeError(w, http.StatusConflict, domain.ErrBusy.Error())
		return
	}
	defer s.batchMu.Unlock()

	driver := app.NewDriver(s.codec, s.logger, nil)
	report, err := driver.Run(r.Context(), items)
	if err != nil {
		// Cancellation mid-batch: the client went away, nothing to answer.
		s.logger.Warn("batch aborted", ports.Err(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	archive, err := s.packager.Archive(report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("package results: %v", err))
		return
	}

	job := s.jobs.add(report, s.packager.Artifacts(report), archive)

	s.logger.Info("batch finished",
		ports.String("job", job.id),
		ports.Int("total", report.Total),
		ports.Int("succeeded", len(report.Succeeded)),
		ports.Int("failed", len(report.Failed)),
	)

	writeJSON(w, http.StatusOK, job.summary())
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown job")
		return
	}
	writeJSON(w, http.StatusOK, job.summary())
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown job")
		return
	}

	name := r.PathValue("name")
	data, ok := job.artifact(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown artifact")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	_, _ = w.Write(data)
}

// resolveRequest turns the request into an ordered item list: uploaded
// multipart files if present, otherwise the "dir" form field.
func (s *Server) resolveRequest(r *http.Request) ([]domain.InputItem, error) {
	// Dir-only requests may arrive urlencoded; ParseMultipartForm has
	// already populated the form values in that case.
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	var blobs []fs.Blob
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			// Browsers submit an empty part when no file was picked.
			if fh.Filename == "" || fh.Size == 0 {
				continue
			}
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
			}
			if !domain.HasSourceExtension(fh.Filename) {
				return nil, fmt.Errorf("%s is not a %s file", fh.Filename, domain.SourceExtension)
			}
			blobs = append(blobs, fs.Blob{Name: fh.Filename, Data: data})
		}
	}
	if len(blobs) > 0 {
		return fs.ResolveBlobs(blobs), nil
	}

	if dir := r.FormValue("dir"); dir != "" {
		return fs.ResolveDir(dir)
	}

	return nil, errors.New("no files uploaded and no dir given")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
