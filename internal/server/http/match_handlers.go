package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pubscout/journal-matcher/internal/aidetect"
	"github.com/pubscout/journal-matcher/internal/domain"
)

// Request body limits.
const (
	maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies
	maxAbstractLength  = 50000
)

// createMatchRequest is the JSON request body for a journal match.
// At least one of abstract and references must be non-blank; the handler
// enforces that after trimming since validator tags cannot express it.
type createMatchRequest struct {
	Abstract   string `json:"abstract,omitempty" validate:"max=50000"`
	References string `json:"references,omitempty" validate:"max=50000"`
}

// detectRequest is the JSON request body for AI-text detection.
type detectRequest struct {
	Text string `json:"text" validate:"required,max=50000"`
}

// createMatch handles POST /api/v1/matches. It runs the full matching
// pipeline and returns the ranked venue table. Empty-but-valid results
// return 200 with an explicit no-results marker; only invalid input is a
// client error.
func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req createMatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Abstract) == "" && strings.TrimSpace(req.References) == "" {
		writeError(w, http.StatusBadRequest, "abstract or references is required")
		return
	}

	matchReq := domain.NewMatchRequest(req.Abstract, req.References)

	result, err := s.matcher.Match(ctx, matchReq)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("request_id", matchReq.ID.String()).
			Str("correlation_id", correlationIDFromContext(ctx)).
			Msg("match request rejected")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainResultToResponse(result))
}

// detectAIText handles POST /api/v1/ai-detection.
func (s *Server) detectAIText(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req detectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	writeJSON(w, http.StatusOK, aidetect.Score(req.Text))
}
