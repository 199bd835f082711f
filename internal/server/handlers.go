package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-scanner/internal/coach"
	"github.com/jonathan/resume-scanner/internal/types"
)

// maxUploadBytes bounds resume uploads; real resumes are far smaller.
const maxUploadBytes = 10 << 20

// handleRoot returns service info and the endpoint map.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"message":      "AI Resume Scanner API",
		"version":      Version,
		"model_loaded": s.predictor.ModelLoaded(),
		"endpoints": map[string]string{
			"health":  "/health",
			"predict": "/predict",
			"chat":    "/chat",
		},
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePredict accepts a PDF resume upload and returns the predicted
// category, confidence, and extracted skills.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing or invalid file upload")
		return
	}
	defer file.Close()

	if !isPDFUpload(header.Header.Get("Content-Type"), header.Filename) {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}
	if len(data) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Empty file")
		return
	}

	text, err := s.extractText(data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to parse PDF: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.predictor.Predict(r.Context(), text))
}

// isPDFUpload accepts PDF and generic binary content types; browsers
// sometimes send octet-stream for PDFs, so the filename extension is a
// fallback signal.
func isPDFUpload(contentType, filename string) bool {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return true
	case strings.HasPrefix(contentType, "application/octet-stream"):
		return true
	case contentType == "" && strings.EqualFold(filepath.Ext(filename), ".pdf"):
		return true
	}
	return false
}

// handleChat proxies a coaching conversation to the completion provider.
// A per-request X-Api-Key header takes priority over the server
// credential.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid chat request: "+err.Error())
		return
	}

	apiKey := r.Header.Get("X-Api-Key")
	content, err := s.coach.Complete(r.Context(), apiKey, req.Messages, req.Model)
	if err != nil {
		if errors.Is(err, coach.ErrNoCredential) {
			s.errorResponse(w, http.StatusInternalServerError, "Server missing GEMINI_API_KEY")
			return
		}
		log.Printf("chat completion failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Completion failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ChatResponse{Content: content})
}
