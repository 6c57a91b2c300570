package httpserver

import (
	"net/http"
	"strings"
)

// topicParam extracts and trims a required query parameter, writing a 400 and
// returning false when it is missing or blank.
func topicParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		writeError(w, http.StatusBadRequest, name+" query parameter is required")
		return "", false
	}
	return v, true
}

// getTrends handles GET /api/v1/trends?topic=.
func (s *Server) getTrends(w http.ResponseWriter, r *http.Request) {
	topic, ok := topicParam(w, r, "topic")
	if !ok {
		return
	}
	report, err := s.analyzer.Trends(r.Context(), topic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// getFunders handles GET /api/v1/funders?topic=.
func (s *Server) getFunders(w http.ResponseWriter, r *http.Request) {
	topic, ok := topicParam(w, r, "topic")
	if !ok {
		return
	}
	report, err := s.analyzer.Funders(r.Context(), topic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// getConcepts handles GET /api/v1/concepts?topic=.
func (s *Server) getConcepts(w http.ResponseWriter, r *http.Request) {
	topic, ok := topicParam(w, r, "topic")
	if !ok {
		return
	}
	report, err := s.analyzer.Concepts(r.Context(), topic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// getCollaborators handles GET /api/v1/collaborators?topic=.
func (s *Server) getCollaborators(w http.ResponseWriter, r *http.Request) {
	topic, ok := topicParam(w, r, "topic")
	if !ok {
		return
	}
	report, err := s.analyzer.Collaborators(r.Context(), topic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// getSDGs handles GET /api/v1/sdgs?topic=.
func (s *Server) getSDGs(w http.ResponseWriter, r *http.Request) {
	topic, ok := topicParam(w, r, "topic")
	if !ok {
		return
	}
	report, err := s.analyzer.SDGs(r.Context(), topic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// getInstitutionStats handles GET /api/v1/institutions/stats?name=.
func (s *Server) getInstitutionStats(w http.ResponseWriter, r *http.Request) {
	name, ok := topicParam(w, r, "name")
	if !ok {
		return
	}
	report, err := s.analyzer.InstitutionStats(r.Context(), name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
