package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, userID string) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo(), newFakeStore(), &fakePurger{}, &fakePurger{}, 24*time.Hour)
	h := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	h.RegisterRoutes(api)
	return router, svc
}

func multipartUpload(t *testing.T, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadEndpointReturnsDocumentWithText(t *testing.T) {
	router, _ := newTestRouter(t, "u1")

	body, contentType := multipartUpload(t, "hello.txt", "text/plain", []byte("Hello world"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message  string           `json:"message"`
		Document DocumentResponse `json:"document"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Document.Text != "Hello world" {
		t.Fatalf("text = %q, want %q", resp.Document.Text, "Hello world")
	}
	if resp.Document.FileName != "hello.txt" {
		t.Fatalf("fileName = %q", resp.Document.FileName)
	}
}

func TestUploadEndpointRejectsUnsupportedType(t *testing.T) {
	router, svc := newTestRouter(t, "u1")

	body, contentType := multipartUpload(t, "pic.png", "image/png", []byte{0x89, 0x50})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	docs, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("rejected upload left %d documents", len(docs))
	}
}

func TestUploadEndpointRequiresFileField(t *testing.T) {
	router, _ := newTestRouter(t, "u1")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("name", "no file here")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetDocumentStatusByOwnership(t *testing.T) {
	router, svc := newTestRouter(t, "u1")

	mine, err := svc.Upload(context.Background(), "u1", "mine.txt", "text/plain", []byte("a"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	theirs, err := svc.Upload(context.Background(), "u2", "theirs.txt", "text/plain", []byte("b"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	cases := []struct {
		name string
		id   string
		want int
	}{
		{"owned", mine.ID, http.StatusOK},
		{"foreign", theirs.ID, http.StatusForbidden},
		{"missing", "does-not-exist", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/documents/"+tc.id, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestListDocumentsScopedToUser(t *testing.T) {
	router, svc := newTestRouter(t, "u1")

	if _, err := svc.Upload(context.Background(), "u1", "a.txt", "text/plain", []byte("a")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := svc.Upload(context.Background(), "u2", "b.txt", "text/plain", []byte("b")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp []DocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 1 || resp[0].FileName != "a.txt" {
		t.Fatalf("documents = %+v", resp)
	}
}

func TestListDocumentsReturnsBareArray(t *testing.T) {
	router, _ := newTestRouter(t, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want a bare JSON array", got)
	}
}

func TestUploadEndpointRejectsOversizeFile(t *testing.T) {
	router, svc := newTestRouter(t, "u1")

	body, contentType := multipartUpload(t, "big.txt", "text/plain", bytes.Repeat([]byte("a"), maxUploadBytes+1))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}

	docs, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("oversize upload left %d documents", len(docs))
	}
}

func TestDeleteDocumentEndpoint(t *testing.T) {
	router, svc := newTestRouter(t, "u1")

	doc, err := svc.Upload(context.Background(), "u1", "a.txt", "text/plain", []byte("a"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+doc.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/documents/"+doc.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d", w.Code)
	}
}
