package extract

import (
	"HoopStatApi/internal/assert"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func geminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodPost)
		assert.Equal(t, r.URL.Path, "/models/test-model:generateContent")
		assert.Equal(t, r.URL.Query().Get("key"), "secret")

		var req geminiRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NilError(t, err)
		assert.Equal(t, req.Contents[0].Parts[0].InlineData.MimeType, "image/png")
		assert.Equal(t, req.Contents[0].Parts[0].InlineData.Data,
			base64.StdEncoding.EncodeToString([]byte("png-bytes")))
		assert.Equal(t, req.GenerationConfig.ResponseMimeType, "application/json")

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func candidate(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func TestGeminiExtract(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, candidate(`{"games":[
		{"date":"2025-11-04","opponent":" Eastside Eagles ","time":"6:30 PM"},
		{"date":"2025-11-11","opponent":"Northview"}]}`))
	defer srv.Close()

	g := NewGemini(srv.URL, "test-model", "secret", 5*time.Second)
	entries, err := g.Extract(context.Background(), []byte("png-bytes"), "image/png")

	assert.NilError(t, err)
	assert.Equal(t, len(entries), 2)
	assert.Equal(t, entries[0], Entry{Date: "2025-11-04", Opponent: "Eastside Eagles", Time: "6:30 PM"})
	assert.Equal(t, entries[1], Entry{Date: "2025-11-11", Opponent: "Northview"})
}

func TestGeminiExtractFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "Not JSON Text",
			status:  http.StatusOK,
			body:    candidate("Sorry, I can't read that image."),
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "No Candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "Garbage Body",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:   "Service Error",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"API key not valid"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, tt.status, tt.body)
			defer srv.Close()

			g := NewGemini(srv.URL, "test-model", "secret", 5*time.Second)
			entries, err := g.Extract(context.Background(), []byte("png-bytes"), "image/png")

			assert.Equal(t, err != nil, true)
			assert.Equal(t, len(entries), 0)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGeminiEmptyDocument(t *testing.T) {
	g := NewGemini("http://127.0.0.1:1", "", "", time.Second)
	_, err := g.Extract(context.Background(), nil, "image/png")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

type blockingExtractor struct {
	started chan struct{}
	release chan struct{}
}

func (b blockingExtractor) Extract(ctx context.Context, _ []byte, _ string) ([]Entry, error) {
	close(b.started)
	select {
	case <-b.release:
		return []Entry{{Date: "2025-12-01", Opponent: "Westlake"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestSerialRejectsOverlap(t *testing.T) {
	inner := blockingExtractor{started: make(chan struct{}), release: make(chan struct{})}
	s := NewSerial(inner)

	done := make(chan error, 1)
	go func() {
		_, err := s.Extract(context.Background(), []byte("doc"), "application/pdf")
		done <- err
	}()
	<-inner.started

	_, err := s.Extract(context.Background(), []byte("doc"), "application/pdf")
	assert.ErrorIs(t, err, ErrBusy)

	close(inner.release)
	assert.NilError(t, <-done)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, []byte, string) ([]Entry, error) {
	return nil, errors.New("boom")
}

func TestSerialReleasesAfterFailure(t *testing.T) {
	s := NewSerial(failingExtractor{})

	for i := 0; i < 2; i++ {
		_, err := s.Extract(context.Background(), []byte("doc"), "image/jpeg")
		assert.Equal(t, err.Error(), "boom")
	}
}
