package api_test

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/media"
)

func TestUploadMedia_JSONEnvelope(t *testing.T) {
	var saved []byte
	med := &mockMedia{
		saveFn: func(data []byte) (string, error) {
			saved = data
			return "/media/abc.png", nil
		},
	}
	h := newTestHandlers(&mockStore{}, nil, nil, med)

	image := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	body := bytes.NewBufferString(`{"image":"` + image + `"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/media", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.UploadMedia(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []byte("fake image bytes"), saved)

	var resp map[string]string
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "/media/abc.png", resp["url"])
}

func TestUploadMedia_RawBody(t *testing.T) {
	med := &mockMedia{
		saveFn: func(data []byte) (string, error) {
			assert.Equal(t, []byte("raw png bytes"), data)
			return "/media/raw.png", nil
		},
	}
	h := newTestHandlers(&mockStore{}, nil, nil, med)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/media", bytes.NewBufferString("raw png bytes"))
	req.Header.Set("Content-Type", "image/png")
	rec := httptest.NewRecorder()
	h.UploadMedia(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUploadMedia_RejectsBadImage(t *testing.T) {
	med := &mockMedia{
		saveFn: func(_ []byte) (string, error) {
			return "", media.ErrBadImage
		},
	}
	h := newTestHandlers(&mockStore{}, nil, nil, med)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/media", bytes.NewBufferString("not an image"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.UploadMedia(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMedia_RejectsBadBase64(t *testing.T) {
	h := newTestHandlers(&mockStore{}, nil, nil, &mockMedia{
		saveFn: func(_ []byte) (string, error) {
			t.Fatal("undecodable payload must not reach the store")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/media",
		bytes.NewBufferString(`{"image":"%%%not-base64%%%"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.UploadMedia(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
