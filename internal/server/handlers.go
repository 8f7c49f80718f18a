package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/layout"
	"github.com/jonathan/resume-analyzer/internal/markup"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// AnalyzeRequest represents the request body for /analyze and /report.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=1"`
	JobDescription string `json:"job_description" validate:"required,min=1"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RenderRequest represents the request body for /render.
type RenderRequest struct {
	Markup string `json:"markup" validate:"required,min=1"`
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AnalyzeResponse represents the response for /analyze.
type AnalyzeResponse struct {
	RequestID string                `json:"request_id"`
	Result    *types.AnalysisResult `json:"result"`
}

// ReportResponse represents the response for /report.
type ReportResponse struct {
	RequestID string                `json:"request_id"`
	Markup    string                `json:"markup"`
	Document  layout.Document       `json:"document"`
	Result    *types.AnalysisResult `json:"result"`
}

// RenderResponse represents the response for /render.
type RenderResponse struct {
	RequestID string          `json:"request_id"`
	Document  layout.Document `json:"document"`
}

// OptimizeResponse represents the response for /optimize. The optimized
// resume is returned both as markup text and as laid-out pages.
type OptimizeResponse struct {
	RequestID string           `json:"request_id"`
	Markup    string           `json:"markup"`
	Document  layout.Document  `json:"document"`
	Usage     types.TokenUsage `json:"usage"`
}

// handleAnalyze runs the full analysis pipeline for one resume/job pair.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.logger.Error("analysis failed", zap.String("request_id", requestID), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{RequestID: requestID, Result: result})
}

// handleReport runs the pipeline and returns the markup report alongside the
// raw result.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.logger.Error("analysis failed", zap.String("request_id", requestID), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ReportResponse{
		RequestID: requestID,
		Markup:    report.Build(result),
		Document:  report.BuildDocument(result),
		Result:    result,
	})
}

// handleRender lays out caller-supplied markup into pages without touching
// the evaluator.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		vErr := validationError(err)
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, RenderResponse{
		RequestID: requestID,
		Document:  s.renderMarkup(req.Markup, requestID),
	})
}

// handleOptimize generates an optimized rendition of the resume tailored to
// the job description and lays it out into pages.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	optimized, usage, err := s.rewriter.Rewrite(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.logger.Error("resume optimization failed", zap.String("request_id", requestID), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, OptimizeResponse{
		RequestID: requestID,
		Markup:    optimized,
		Document:  s.renderMarkup(optimized, requestID),
		Usage:     usage,
	})
}

// renderMarkup tokenizes and paginates markup, logging when heading-like
// lines degraded to plain paragraphs. Rendering itself never fails.
func (s *Server) renderMarkup(text, requestID string) layout.Document {
	blocks := markup.Tokenize(text)
	if n := markup.CountDegraded(blocks); n > 0 {
		s.logger.Warn("markup degraded to plain paragraphs during rendering",
			zap.String("request_id", requestID),
			zap.Int("degraded_blocks", n))
	}
	return layout.Layout(blocks)
}

func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	if err := req.Validate(); err != nil {
		vErr := validationError(err)
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return req, false
	}
	return req, true
}
