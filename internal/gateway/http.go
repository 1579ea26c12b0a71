package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/seocopilot/seo-copilot/internal/apperr"
)

// analyzeRequest is the body of POST /analyze.
type analyzeRequest struct {
	Query     string          `json:"query"`
	UserTitle string          `json:"user_title"`
	SerpJSON  json.RawMessage `json:"serp_json"`
}

// toolCallRequest is the body of POST /mcp/tools/{name}.
type toolCallRequest struct {
	Arguments map[string]any `json:"arguments"`
}

// Router builds the HTTP surface over the gateway.
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogging)

	router.HandleFunc("/", s.rootHandler).Methods("GET")
	router.HandleFunc("/analyze", s.demoAnalyzeHandler).Methods("GET")
	router.HandleFunc("/analyze", s.analyzeHandler).Methods("POST")
	router.HandleFunc("/mcp", s.infoHandler).Methods("GET")
	router.HandleFunc("/mcp/tools/{name}", s.toolHandler).Methods("POST")
	router.HandleFunc("/mcp/resources/{uri}", s.resourceHandler).Methods("GET")

	return router
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Info("Handling request")
		next.ServeHTTP(w, r)
	})
}

func (s *Service) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "SEO Copilot server running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) demoAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	demo, err := s.Demo(r.URL.Query().Get("domain"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, demo)
}

func (s *Service) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperr.Validation("body", "failed to read request body"))
		return
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperr.Validation("body", "request body is not valid JSON"))
		return
	}

	result, err := s.AnalyzeProvided(r.Context(), req.Query, req.UserTitle, req.SerpJSON)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Service) infoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Info())
}

func (s *Service) toolHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req toolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("body", "request body is not valid JSON"))
		return
	}

	result, err := s.CallTool(r.Context(), name, req.Arguments)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (s *Service) resourceHandler(w http.ResponseWriter, r *http.Request) {
	uri := mux.Vars(r)["uri"]

	data, err := s.ReadResource(uri)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"resource": json.RawMessage(data)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

// writeError converts any pipeline error to a structured payload. The
// message is always human-readable; stack traces never reach the caller.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	payload := map[string]any{
		"error": err.Error(),
		"kind":  string(kind),
	}
	if field := apperr.FieldOf(err); field != "" {
		payload["field"] = field
	}

	logrus.Errorf("Request failed (%s): %v", kind, err)
	writeJSON(w, apperr.HTTPStatus(kind), payload)
}
