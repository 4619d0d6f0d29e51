package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/receitinhas/backend/internal/middleware"
)

// StubTokenValidator resolves every token to a fixed identity, or fails
// when Err is set.
type StubTokenValidator struct {
	UserID uuid.UUID
	Err    error
}

func (v *StubTokenValidator) ValidateToken(ctx context.Context, token string) (*middleware.TokenClaims, error) {
	if v.Err != nil {
		return nil, v.Err
	}
	return &middleware.TokenClaims{UserID: v.UserID}, nil
}

// StubObjectClient records blob calls and optionally fails them.
type StubObjectClient struct {
	PutCalls    int
	DeleteCalls int
	PutErr      error
	DeleteErr   error
}

func (c *StubObjectClient) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	c.PutCalls++
	if c.PutErr != nil {
		return nil, c.PutErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (c *StubObjectClient) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	c.DeleteCalls++
	if c.DeleteErr != nil {
		return nil, c.DeleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

// doJSON performs a request with a JSON body against the handler under an
// authenticated route group.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart request with a "recipe" JSON field and
// optional named file parts.
func doMultipart(t *testing.T, r *gin.Engine, method, path string, recipe interface{}, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if recipe != nil {
		raw, err := json.Marshal(recipe)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("recipe", string(raw)))
	}
	for field, data := range files {
		part, err := mw.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipartFields performs a multipart request with plain string fields
// and optional named file parts.
func doMultipartFields(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for field, value := range fields {
		require.NoError(t, mw.WriteField(field, value))
	}
	for field, data := range files {
		part, err := mw.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAuthedRequest(t *testing.T, method, path, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
