// Package service exposes the analysis and redaction pipelines over a
// transport-agnostic JSON request surface.
//
// A request is a method name plus positional JSON arguments, matching the
// worker bridge protocol:
//
//	{"method": "analyze", "args": ["book.pdf", 50]}
//
// Responses are either the method's result object or a structured error:
//
//	{"error": "Unknown method: foo"}
//
// Input errors never surface as failures of the process; every request is
// handled independently and a failing request leaves no state behind for
// the next one.
package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/bookforge/pagemark"
	"github.com/bookforge/pagemark/engine"
	"github.com/bookforge/pagemark/model"
	"github.com/bookforge/pagemark/redact"
)

// ErrUnknownMethod is returned for requests naming a method the service
// does not implement.
var ErrUnknownMethod = errors.New("unknown method")

// ErrNoDocument is returned when a request needs an analyzed document but
// none has been analyzed in this session.
var ErrNoDocument = errors.New("no document loaded")

// Request is one JSON request: a method name and positional arguments.
type Request struct {
	Method string            `json:"method"`
	Args   []json.RawMessage `json:"args"`
}

// Service holds per-session state: the engine opener, the most recent
// analysis, and the path it came from. State is explicit and per-Service;
// nothing is process-global, so independent sessions cannot interfere.
type Service struct {
	opener   engine.Opener
	config   Config
	logger   log.Logger
	validate *validator.Validate

	analysis *pagemark.Analysis
	lastPath string
}

// New creates a service using the given engine opener and configuration.
func New(opener engine.Opener, config Config) *Service {
	return &Service{
		opener:   opener,
		config:   config,
		logger:   newLogger(config.Logging),
		validate: validator.New(),
	}
}

// Handle dispatches one raw JSON request and returns the marshaled
// response. All errors — malformed payloads, unknown methods, resource
// failures — come back as a structured {"error": ...} document; Handle
// itself never fails.
func (s *Service) Handle(data []byte) []byte {
	requestID := uuid.NewString()
	started := time.Now()

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn().Str("request_id", requestID).Err(err).Msg("malformed request")
		return errorResponse(fmt.Errorf("malformed request: %w", err))
	}

	result, err := s.dispatch(&req)
	elapsed := time.Since(started)

	if err != nil {
		s.logger.Warn().
			Str("request_id", requestID).
			Str("method", req.Method).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("request failed")
		return errorResponse(err)
	}

	s.logger.Info().
		Str("request_id", requestID).
		Str("method", req.Method).
		Dur("elapsed", elapsed).
		Msg("request handled")

	out, err := json.Marshal(result)
	if err != nil {
		return errorResponse(fmt.Errorf("encode response: %w", err))
	}
	return out
}

// dispatch routes a parsed request to its method handler.
func (s *Service) dispatch(req *Request) (any, error) {
	switch req.Method {
	case "analyze":
		return s.handleAnalyze(req.Args)
	case "export":
		return s.handleExport(req.Args)
	case "find_similar":
		return s.handleFindSimilar(req.Args)
	case "render_page":
		return s.handleRenderPage(req.Args)
	case "export_pdf":
		return s.handleExportPDF(req.Args)
	case "redact":
		return s.handleRedact(req.Args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, req.Method)
	}
}

// AnalyzeResult is the analyze method's response payload.
type AnalyzeResult struct {
	Blocks         []model.Block             `json:"blocks"`
	Categories     map[string]model.Category `json:"categories"`
	PageCount      int                       `json:"page_count"`
	PageDimensions []model.PageDimensions    `json:"page_dimensions"`
	DocName        string                    `json:"doc_name"`
}

func (s *Service) handleAnalyze(args []json.RawMessage) (any, error) {
	path, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("analyze: missing document path")
	}

	opts := pagemark.DefaultOptions()
	opts.MaxPages = s.config.Analyze.MaxPages
	if len(args) > 1 {
		var maxPages *int
		if err := json.Unmarshal(args[1], &maxPages); err != nil {
			return nil, fmt.Errorf("analyze: max_pages: %w", err)
		}
		if maxPages != nil {
			opts.MaxPages = *maxPages
		}
	}

	analysis, err := pagemark.AnalyzeFile(s.opener, path, opts)
	if err != nil {
		return nil, err
	}

	// The previous session document's state is discarded wholesale.
	s.analysis = analysis
	s.lastPath = path

	blocks := analysis.Blocks
	if blocks == nil {
		blocks = []model.Block{}
	}

	return AnalyzeResult{
		Blocks:         blocks,
		Categories:     analysis.Categories,
		PageCount:      analysis.PageCount,
		PageDimensions: analysis.PageDimensions,
		DocName:        analysis.DocName,
	}, nil
}

// ExportResult is the export method's response payload.
type ExportResult struct {
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

func (s *Service) handleExport(args []json.RawMessage) (any, error) {
	if s.analysis == nil {
		return nil, ErrNoDocument
	}

	var enabled []string
	if len(args) > 0 {
		if err := json.Unmarshal(args[0], &enabled); err != nil {
			return nil, fmt.Errorf("export: enabled categories: %w", err)
		}
	}

	text, count := s.analysis.ExportText(enabled)
	return ExportResult{Text: text, CharCount: count}, nil
}

// FindSimilarResult is the find_similar method's response payload.
type FindSimilarResult struct {
	SimilarIDs []string `json:"similar_ids"`
	Count      int      `json:"count"`
}

func (s *Service) handleFindSimilar(args []json.RawMessage) (any, error) {
	if s.analysis == nil {
		return nil, ErrNoDocument
	}

	blockID, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}

	similar := s.analysis.FindSimilar(blockID)
	if similar == nil {
		similar = []string{}
	}
	return FindSimilarResult{SimilarIDs: similar, Count: len(similar)}, nil
}

// RenderResult is the render_page method's response payload.
type RenderResult struct {
	Image string `json:"image"`
}

func (s *Service) handleRenderPage(args []json.RawMessage) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("render_page: missing page index")
	}
	var page int
	if err := json.Unmarshal(args[0], &page); err != nil {
		return nil, fmt.Errorf("render_page: page: %w", err)
	}

	scale := s.config.Render.Scale
	if len(args) > 1 {
		var v *float64
		if err := json.Unmarshal(args[1], &v); err != nil {
			return nil, fmt.Errorf("render_page: scale: %w", err)
		}
		if v != nil {
			scale = *v
		}
	}

	// An explicit path makes the call stateless; otherwise the session's
	// last analyzed document is re-opened.
	path := s.lastPath
	if len(args) > 2 {
		var v *string
		if err := json.Unmarshal(args[2], &v); err != nil {
			return nil, fmt.Errorf("render_page: path: %w", err)
		}
		if v != nil && *v != "" {
			path = *v
		}
	}
	if path == "" {
		return nil, ErrNoDocument
	}

	doc, err := s.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer doc.Close()

	data, err := doc.Rasterize(page, scale)
	if err != nil {
		return nil, err
	}
	return RenderResult{Image: base64.StdEncoding.EncodeToString(data)}, nil
}

// ExportPDFResult is the export_pdf method's response payload.
type ExportPDFResult struct {
	PDFBase64 string `json:"pdf_base64"`
}

func (s *Service) handleExportPDF(args []json.RawMessage) (any, error) {
	path, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("export_pdf: missing document path")
	}

	var regions []redact.Region
	if len(args) > 1 {
		if err := json.Unmarshal(args[1], &regions); err != nil {
			return nil, fmt.Errorf("export_pdf: regions: %w", err)
		}
	}

	data, err := redact.ExportBytes(s.opener, path, regions)
	if err != nil {
		return nil, err
	}
	return ExportPDFResult{PDFBase64: base64.StdEncoding.EncodeToString(data)}, nil
}

// RedactRequest is the redact method's argument payload.
type RedactRequest struct {
	InputPath  string      `json:"input_path" validate:"required"`
	OutputPath string      `json:"output_path" validate:"required"`
	Plan       redact.Plan `json:"plan"`
}

// RedactResult is the redact method's response payload.
type RedactResult struct {
	Success bool `json:"success"`
}

func (s *Service) handleRedact(args []json.RawMessage) (any, error) {
	var req RedactRequest
	switch len(args) {
	case 1:
		if err := json.Unmarshal(args[0], &req); err != nil {
			return nil, fmt.Errorf("redact: %w", err)
		}
	case 3:
		// Positional form: input path, output path, plan.
		var err error
		if req.InputPath, err = stringArg(args, 0); err != nil {
			return nil, err
		}
		if req.OutputPath, err = stringArg(args, 1); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(args[2], &req.Plan); err != nil {
			return nil, fmt.Errorf("redact: plan: %w", err)
		}
	default:
		return nil, errors.New("redact: expected (input, output, plan) or a single request object")
	}

	if err := s.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("redact: %w", err)
	}

	if err := redact.Redact(s.opener, req.InputPath, req.OutputPath, req.Plan); err != nil {
		return nil, err
	}
	return RedactResult{Success: true}, nil
}

// stringArg decodes args[i] as a string.
func stringArg(args []json.RawMessage, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i)
	}
	var s string
	if err := json.Unmarshal(args[i], &s); err != nil {
		return "", fmt.Errorf("argument %d: %w", i, err)
	}
	return s, nil
}

// errorResponse marshals an error into the structured error document.
func errorResponse(err error) []byte {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	return out
}
