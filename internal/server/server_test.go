package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/rewrite"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/types"
)

type fakeAnalyzer struct {
	result *types.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _, _ string) (*types.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeRewriter struct {
	markup string
	err    error
}

func (f *fakeRewriter) Rewrite(_ context.Context, _, _ string) (string, types.TokenUsage, error) {
	if f.err != nil {
		return "", types.TokenUsage{}, f.err
	}
	return f.markup, types.TokenUsage{PromptTokens: 300, CompletionTokens: 200}, nil
}

func newTestServer(t *testing.T, analyzer Analyzer) *Server {
	t.Helper()
	s, err := New(Config{Port: 0, RateLimit: &ratelimit.Config{Enabled: false}},
		analyzer, &fakeRewriter{markup: "# Optimized"}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresAnalyzerAndRewriter(t *testing.T) {
	_, err := New(Config{}, nil, &fakeRewriter{}, zap.NewNop())
	assert.Error(t, err)

	_, err = New(Config{}, &fakeAnalyzer{}, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})
	rec := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAnalyze_HappyPath(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{result: &types.AnalysisResult{
		OverallScore:     81.5,
		ExecutiveSummary: "Looks strong.",
	}})

	rec := doRequest(s, http.MethodPost, "/analyze",
		`{"resume_text": "resume", "job_description": "job"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 81.5, resp.Result.OverallScore)
}

func TestAnalyze_MissingFields(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/analyze", `{"resume_text": "resume"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// The validation error names the failing field.
	assert.Contains(t, rec.Body.String(), "validation error")
	assert.Contains(t, rec.Body.String(), "JobDescription")

	rec = doRequest(s, http.MethodPost, "/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_PipelineFailureMapsToBadGateway(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{err: &scoring.AnalysisError{Failures: []scoring.Failure{
		{Component: "Clarity and Structure", Err: errors.New("bad response")},
	}}})

	rec := doRequest(s, http.MethodPost, "/analyze",
		`{"resume_text": "resume", "job_description": "job"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clarity and Structure")
}

func TestReport_IncludesMarkup(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{result: &types.AnalysisResult{
		OverallScore:     64.0,
		ExecutiveSummary: "Mixed fit.",
	}})

	rec := doRequest(s, http.MethodPost, "/report",
		`{"resume_text": "resume", "job_description": "job"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Markup, "# Resume Analysis Report")
	assert.Contains(t, resp.Markup, "Mixed fit.")
	assert.Equal(t, 64.0, resp.Result.OverallScore)

	// The laid-out document rides along, with the overall score line colored
	// by its band.
	require.NotEmpty(t, resp.Document.Pages)
	found := false
	for _, el := range resp.Document.Pages[0].Elements {
		for _, line := range el.Lines {
			if strings.Contains(line, "Overall Fit Score") {
				assert.Equal(t, "#eab308", el.Style.Color)
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestRender(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/render", `{"markup": "# Title\n\nBody text."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Document.Pages, 1)
	assert.Equal(t, 612.0, resp.Document.PageWidth)
	assert.Len(t, resp.Document.Pages[0].Elements, 2)

	rec = doRequest(s, http.MethodPost, "/render", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Markup")
}

func TestRender_LogsDegradedMarkup(t *testing.T) {
	core, observed := observer.New(zap.WarnLevel)
	s, err := New(Config{RateLimit: &ratelimit.Config{Enabled: false}},
		&fakeAnalyzer{}, &fakeRewriter{}, zap.New(core))
	require.NoError(t, err)

	rec := doRequest(s, http.MethodPost, "/render", `{"markup": "#### broken heading\n\nfine text"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := observed.FilterMessageSnippet("degraded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["degraded_blocks"])
}

func TestOptimize_HappyPath(t *testing.T) {
	s, err := New(Config{RateLimit: &ratelimit.Config{Enabled: false}},
		&fakeAnalyzer{},
		&fakeRewriter{markup: "# Jane Doe\n\n## Skills\n\n- Go\n- SQL"},
		zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(s, http.MethodPost, "/optimize",
		`{"resume_text": "resume", "job_description": "job"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Contains(t, resp.Markup, "# Jane Doe")
	require.Len(t, resp.Document.Pages, 1)
	assert.Equal(t, 612.0, resp.Document.PageWidth)
	assert.Equal(t, types.TokenUsage{PromptTokens: 300, CompletionTokens: 200}, resp.Usage)
}

func TestOptimize_MissingFields(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/optimize", `{"resume_text": "resume"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimize_RewriteFailureMapsStatus(t *testing.T) {
	s, err := New(Config{RateLimit: &ratelimit.Config{Enabled: false}},
		&fakeAnalyzer{}, &fakeRewriter{err: rewrite.ErrEmptyRewrite}, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(s, http.MethodPost, "/optimize",
		`{"resume_text": "resume", "job_description": "job"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s, err := New(Config{
		RateLimit: &ratelimit.Config{Enabled: true, Limit: 2, Window: time.Minute},
	}, &fakeAnalyzer{}, &fakeRewriter{}, zap.NewNop())
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	for i := 0; i < 2; i++ {
		rec := doRequest(s, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})
	rec := doRequest(s, http.MethodOptions, "/analyze", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "resume_text", Message: "required"}, http.StatusBadRequest},
		{"empty input", analysis.ErrEmptyInput, http.StatusBadRequest},
		{"empty rewrite input", rewrite.ErrEmptyInput, http.StatusBadRequest},
		{"empty rewrite output", rewrite.ErrEmptyRewrite, http.StatusBadGateway},
		{"rate limited upstream", llm.ErrRateLimited, http.StatusServiceUnavailable},
		{"retries exhausted", &llm.UnavailableError{Attempts: 3}, http.StatusServiceUnavailable},
		{"auth", &llm.AuthError{Message: "bad key"}, http.StatusBadGateway},
		{"analysis", &scoring.AnalysisError{}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
