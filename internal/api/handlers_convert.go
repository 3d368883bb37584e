package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docrst/internal/parser"
	"github.com/dgallion1/docrst/internal/pipeline"
)

// rstContentType is the response type for rendered documents.
const rstContentType = "text/x-rst; charset=utf-8"

// upload is one file read from a multipart request.
type upload struct {
	filename string
	data     []byte
}

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	msg  string
	code int
}

func (e *uploadError) Error() string { return e.msg }

// parseForm limits the request body and parses the multipart form. files
// is the number of uploads the body may carry.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, files int64) bool {
	// extra 1MB per file for form overhead
	r.Body = http.MaxBytesReader(w, r.Body, files*(s.cfg.MaxUploadBytes+1024*1024))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// readUpload validates the extension and size of one uploaded file.
func (s *Server) readUpload(fh *multipart.FileHeader) (upload, error) {
	filename := sanitizeFilename(fh.Filename)
	if !parser.IsSupportedExtension(filename) {
		return upload{}, &uploadError{
			msg:  fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			code: http.StatusUnsupportedMediaType,
		}
	}

	f, err := fh.Open()
	if err != nil {
		return upload{}, &uploadError{msg: "failed to open file", code: http.StatusInternalServerError}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return upload{}, &uploadError{msg: "failed to read file", code: http.StatusInternalServerError}
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return upload{}, &uploadError{
			msg:  fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes),
			code: http.StatusRequestEntityTooLarge,
		}
	}
	return upload{filename: filename, data: data}, nil
}

// formUpload reads the single "file" field of a parsed form.
func (s *Server) formUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return upload{}, false
	}
	up, err := s.readUpload(files[0])
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			jsonError(w, ue.msg, ue.code)
		} else {
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return upload{}, false
	}
	return up, true
}

// handleRender converts the upload synchronously and returns the text.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, 1) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	up, ok := s.formUpload(w, r)
	if !ok {
		return
	}

	out, err := s.orchestrator.NewWorker().Convert(up.filename, up.data, r.FormValue("title"))
	if err != nil {
		s.log.Warn("conversion failed", "filename", up.filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", rstContentType)
	w.Write([]byte(out))
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, 1) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	up, ok := s.formUpload(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(up.filename, r.FormValue("title"), up.data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": pollURL(job.ID),
	})
}

// handleBatchSubmit queues every file of the "files" field. Rejected files
// are reported individually.
func (s *Server) handleBatchSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, 10) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		up, err := s.readUpload(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": sanitizeFilename(fh.Filename),
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(up.filename, "", up.data)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": up.filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": up.filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": pollURL(job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleJobOutput(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	out, done := job.Output()
	if !done {
		snap := job.Snapshot()
		code := http.StatusConflict
		if snap.Status == pipeline.StatusFailed {
			code = http.StatusUnprocessableEntity
		}
		jsonError(w, fmt.Sprintf("job is %s", snap.Status), code)
		return
	}
	w.Header().Set("Content-Type", rstContentType)
	w.Write([]byte(out))
}

func pollURL(jobID string) string {
	return fmt.Sprintf("/api/jobs/%s", jobID)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
