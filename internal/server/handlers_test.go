package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scanner/internal/classify"
	"github.com/jonathan/resume-scanner/internal/coach"
	"github.com/jonathan/resume-scanner/internal/predict"
	"github.com/jonathan/resume-scanner/internal/types"
)

// fakeCompleter stands in for the Gemini-backed coach in handler tests.
type fakeCompleter struct {
	reply   string
	err     error
	gotKey  string
	gotMsgs []types.ChatMessage
}

func (f *fakeCompleter) Complete(_ context.Context, apiKey string, messages []types.ChatMessage, _ string) (string, error) {
	f.gotKey = apiKey
	f.gotMsgs = messages
	return f.reply, f.err
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(Config{Port: 0}, predict.New())
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

// pdfUpload builds a multipart body with a single "file" part.
func pdfUpload(t *testing.T, contentType, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandlePredict_Success(t *testing.T) {
	s := newTestServer(t)
	s.extractText = func([]byte) (string, error) {
		return "Python, pandas, numpy, machine learning, TensorFlow", nil
	}

	body, contentType := pdfUpload(t, "application/pdf", "resume.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handlePredict(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var pred classify.Prediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pred))
	assert.Equal(t, "Data Science", pred.Category)
	assert.GreaterOrEqual(t, pred.Confidence, 0.5)
	assert.Contains(t, pred.Skills, "Python")
}

func TestHandlePredict_RejectsEmptyFileBeforeExtraction(t *testing.T) {
	s := newTestServer(t)
	extractorCalled := false
	s.extractText = func([]byte) (string, error) {
		extractorCalled = true
		return "", nil
	}

	body, contentType := pdfUpload(t, "application/pdf", "resume.pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handlePredict(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Empty file")
	assert.False(t, extractorCalled, "empty upload must be rejected before extraction")
}

func TestHandlePredict_RejectsNonPDFContentType(t *testing.T) {
	s := newTestServer(t)

	body, contentType := pdfUpload(t, "text/plain", "resume.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handlePredict(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only PDF files are supported")
}

func TestHandlePredict_MissingFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	w := httptest.NewRecorder()

	s.handlePredict(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePredict_ExtractionFailure(t *testing.T) {
	s := newTestServer(t)
	s.extractText = func([]byte) (string, error) {
		return "", errors.New("corrupt xref table")
	}

	body, contentType := pdfUpload(t, "application/pdf", "resume.pdf", []byte("%PDF-1.4 junk"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handlePredict(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to parse PDF")
}

func TestIsPDFUpload(t *testing.T) {
	assert.True(t, isPDFUpload("application/pdf", "resume.pdf"))
	assert.True(t, isPDFUpload("application/octet-stream", "resume.bin"))
	assert.True(t, isPDFUpload("", "resume.PDF"))
	assert.False(t, isPDFUpload("text/plain", "resume.txt"))
	assert.False(t, isPDFUpload("", "resume.docx"))
}

func TestHandleChat_Success(t *testing.T) {
	s := newTestServer(t)
	fake := &fakeCompleter{reply: "Tighten your summary section."}
	s.coach = fake

	payload := `{"messages":[{"role":"user","content":"How do I improve my resume?"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	req.Header.Set("X-Api-Key", "user-supplied-key")
	w := httptest.NewRecorder()

	s.handleChat(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Tighten your summary section.", resp.Content)
	assert.Equal(t, "user-supplied-key", fake.gotKey)
	require.Len(t, fake.gotMsgs, 1)
}

func TestHandleChat_InvalidBody(t *testing.T) {
	s := newTestServer(t)
	s.coach = &fakeCompleter{}

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	s.handleChat(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_ValidationFailure(t *testing.T) {
	s := newTestServer(t)
	s.coach = &fakeCompleter{}

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"messages":[]}`))
	w := httptest.NewRecorder()

	s.handleChat(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid chat request")
}

func TestHandleChat_MissingCredential(t *testing.T) {
	s := newTestServer(t)
	s.coach = &fakeCompleter{err: coach.ErrNoCredential}

	payload := `{"messages":[{"role":"user","content":"hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	w := httptest.NewRecorder()

	s.handleChat(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "GEMINI_API_KEY")
}

func TestHandleChat_ProviderError(t *testing.T) {
	s := newTestServer(t)
	s.coach = &fakeCompleter{err: errors.New("quota exceeded")}

	payload := `{"messages":[{"role":"user","content":"hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	w := httptest.NewRecorder()

	s.handleChat(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "quota exceeded")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleRoot(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	s.handleRoot(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "ok", info["status"])
	assert.Equal(t, Version, info["version"])
	assert.Equal(t, false, info["model_loaded"], "no model trained in this test server")
}

func TestWithCORS_OptionsShortCircuit(t *testing.T) {
	s := newTestServer(t)
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not run for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
