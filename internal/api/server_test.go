package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docrst/internal/config"
	"github.com/dgallion1/docrst/internal/pipeline"
)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.APIKey = apiKey
	cfg.WorkerCount = 1
	cfg.MaxUploadBytes = 1024

	orch := pipeline.NewOrchestrator(cfg, nil)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, nil, cfg)
}

type formFile struct {
	field, name, body string
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "secret")
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing authorization", decodeJSON(t, rec)["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = serve(s, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = serve(s, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeJSON(t, rec)["workers"])
}

func TestRender(t *testing.T) {
	s := newTestServer(t, "")

	req := multipartRequest(t, "/api/render", nil, formFile{"file", "doc.md", "# Guide\n\nRead *this*.\n"})
	rec := serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, rstContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "Guide\n=====\n\nRead *this*.\n", rec.Body.String())

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	conversions, ok := decodeJSON(t, rec)["conversions"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, conversions["count"])
}

func TestRender_Title(t *testing.T) {
	s := newTestServer(t, "")
	req := multipartRequest(t, "/api/render", map[string]string{"title": "Notes"},
		formFile{"file", "notes.txt", "one\n\ntwo"})
	rec := serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Notes\n=====\n\none\n\ntwo\n", rec.Body.String())
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
		code int
	}{
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewBufferString("x"))
			},
			code: http.StatusBadRequest,
		},
		{
			name: "missing file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/render", map[string]string{"title": "x"})
			},
			code: http.StatusBadRequest,
		},
		{
			name: "unsupported extension",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/render", nil, formFile{"file", "a.exe", "x"})
			},
			code: http.StatusUnsupportedMediaType,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/render", nil, formFile{"file", "a.txt", string(make([]byte, 2048))})
			},
			code: http.StatusRequestEntityTooLarge,
		},
		{
			name: "render failure",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/render", nil, formFile{"file", "t.html",
					`<table><tr><td><table><tr><td>x</td></tr></table></td></tr></table>`})
			},
			code: http.StatusUnprocessableEntity,
		},
	}

	s := newTestServer(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, tt.req(t))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decodeJSON(t, rec)["error"])
		})
	}
}

func TestJobs_Lifecycle(t *testing.T) {
	s := newTestServer(t, "")

	rec := serve(s, multipartRequest(t, "/api/jobs", nil, formFile{"file", "data.csv", "a,b\n1,2\n"}))
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	jobID, _ := body["job_id"].(string)
	require.NotEmpty(t, jobID)
	assert.Equal(t, "/api/jobs/"+jobID, body["poll_url"])

	require.Eventually(t, func() bool {
		rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID, nil))
		return rec.Code == http.StatusOK && decodeJSON(t, rec)["status"] == string(pipeline.StatusCompleted)
	}, 2*time.Second, 10*time.Millisecond)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID+"/output", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data\n====\n")
	assert.Contains(t, rec.Body.String(), "| a | b |")
}

func TestJobs_FailedOutput(t *testing.T) {
	s := newTestServer(t, "")
	rec := serve(s, multipartRequest(t, "/api/jobs", nil, formFile{"file", "bad.md", "---\n: [\n---\n"}))
	require.Equal(t, http.StatusAccepted, rec.Code)
	jobID := decodeJSON(t, rec)["job_id"].(string)

	require.Eventually(t, func() bool {
		rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID, nil))
		return decodeJSON(t, rec)["status"] == string(pipeline.StatusFailed)
	}, 2*time.Second, 10*time.Millisecond)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID+"/output", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestJobs_NotFound(t *testing.T) {
	s := newTestServer(t, "")
	for _, path := range []string{"/api/jobs/nope", "/api/jobs/nope/output"} {
		rec := serve(s, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestJobs_Batch(t *testing.T) {
	s := newTestServer(t, "")
	req := multipartRequest(t, "/api/jobs/batch", nil,
		formFile{"files", "a.txt", "alpha"},
		formFile{"files", "b.exe", "beta"},
	)
	rec := serve(s, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var body struct {
		Jobs []map[string]any `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Jobs, 2)
	assert.NotEmpty(t, body.Jobs[0]["job_id"])
	assert.Equal(t, "unsupported file type: .exe", body.Jobs[1]["error"])
}

func TestFormats(t *testing.T) {
	s := newTestServer(t, "")
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/formats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Contains(t, body["extensions"], ".md")
	assert.Contains(t, body["node_kinds"], "paragraph")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.md", sanitizeFilename("../../etc/report.md"))
	assert.Equal(t, "a_b.txt", sanitizeFilename("a..b.txt"))
	assert.Equal(t, "unnamed", sanitizeFilename(""))
}
