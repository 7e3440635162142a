package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presskit-backend/internal/domains/analytics"
	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePresskitService scripts service outcomes per test.
type fakePresskitService struct {
	createFn    func(ctx context.Context, authUserID uuid.UUID, req presskit.CreateRequest) (*presskit.Presskit, error)
	listFn      func(ctx context.Context, authUserID uuid.UUID) ([]presskit.Presskit, error)
	getByIDFn   func(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error)
	updateFn    func(ctx context.Context, authUserID, id uuid.UUID, req presskit.UpdateRequest) (*presskit.Presskit, error)
	publishFn   func(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error)
	archiveFn   func(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error)
	deleteFn    func(ctx context.Context, authUserID, id uuid.UUID) error
	getPublicFn func(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error)
	downloadFn  func(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error)
	statsFn     func(ctx context.Context, authUserID, id uuid.UUID) (*presskit.StatsDTO, error)
}

func (f *fakePresskitService) Create(ctx context.Context, authUserID uuid.UUID, req presskit.CreateRequest) (*presskit.Presskit, error) {
	return f.createFn(ctx, authUserID, req)
}

func (f *fakePresskitService) List(ctx context.Context, authUserID uuid.UUID) ([]presskit.Presskit, error) {
	return f.listFn(ctx, authUserID)
}

func (f *fakePresskitService) GetByID(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
	return f.getByIDFn(ctx, authUserID, id)
}

func (f *fakePresskitService) Update(ctx context.Context, authUserID, id uuid.UUID, req presskit.UpdateRequest) (*presskit.Presskit, error) {
	return f.updateFn(ctx, authUserID, id, req)
}

func (f *fakePresskitService) Publish(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
	return f.publishFn(ctx, authUserID, id)
}

func (f *fakePresskitService) Archive(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
	return f.archiveFn(ctx, authUserID, id)
}

func (f *fakePresskitService) Delete(ctx context.Context, authUserID, id uuid.UUID) error {
	return f.deleteFn(ctx, authUserID, id)
}

func (f *fakePresskitService) GetPublic(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error) {
	return f.getPublicFn(ctx, slug, meta)
}

func (f *fakePresskitService) RegisterDownload(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error) {
	return f.downloadFn(ctx, slug, meta)
}

func (f *fakePresskitService) Stats(ctx context.Context, authUserID, id uuid.UUID) (*presskit.StatsDTO, error) {
	return f.statsFn(ctx, authUserID, id)
}

func newRouter(h *PresskitHandler, userID *uuid.UUID) *gin.Engine {
	router := gin.New()
	if userID != nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserID, *userID)
		})
	}
	router.POST("/presskits", h.Create)
	router.GET("/presskits/:id", h.GetByID)
	router.POST("/presskits/:id/publish", h.Publish)
	router.GET("/p/:slug", h.GetPublic)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createPayload() gin.H {
	return gin.H{
		"title":         "Summer Tour",
		"artist_name":   "DJ Shadow",
		"template_type": "electronic",
		"content_data": gin.H{
			"biography": "Twenty years behind the decks across three continents.",
			"genre":     []string{"techno"},
			"contact_info": gin.H{
				"booking_email": "booking@example.com",
			},
		},
	}
}

func TestCreateReturns201(t *testing.T) {
	userID := uuid.New()
	svc := &fakePresskitService{
		createFn: func(ctx context.Context, authUserID uuid.UUID, req presskit.CreateRequest) (*presskit.Presskit, error) {
			assert.Equal(t, userID, authUserID)
			return &presskit.Presskit{
				ID:     uuid.New(),
				Title:  req.Title,
				Status: presskit.StatusDraft,
			}, nil
		},
	}
	router := newRouter(NewPresskitHandler(svc), &userID)

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(createPayload())
	req := httptest.NewRequest(http.MethodPost, "/presskits", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Summer Tour", data["title"])
	assert.Equal(t, "draft", data["status"])
}

func TestCreateQuotaExceeded(t *testing.T) {
	userID := uuid.New()
	svc := &fakePresskitService{
		createFn: func(ctx context.Context, authUserID uuid.UUID, req presskit.CreateRequest) (*presskit.Presskit, error) {
			return nil, presskit.ErrQuotaExceeded
		},
	}
	router := newRouter(NewPresskitHandler(svc), &userID)

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(createPayload())
	req := httptest.NewRequest(http.MethodPost, "/presskits", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "QUOTA_EXCEEDED", body["error_code"])
	assert.Equal(t, "Límite de presskits alcanzado", body["message"])
}

func TestCreateValidationErrorFromService(t *testing.T) {
	userID := uuid.New()
	svc := &fakePresskitService{
		createFn: func(ctx context.Context, authUserID uuid.UUID, req presskit.CreateRequest) (*presskit.Presskit, error) {
			req.Normalize()
			return nil, req.Validate()
		},
	}
	router := newRouter(NewPresskitHandler(svc), &userID)

	payload := createPayload()
	payload["title"] = ""

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(payload)
	req := httptest.NewRequest(http.MethodPost, "/presskits", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "title")
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	userID := uuid.New()
	router := newRouter(NewPresskitHandler(&fakePresskitService{}), &userID)

	req := httptest.NewRequest(http.MethodGet, "/presskits/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestGetByIDNotFound(t *testing.T) {
	userID := uuid.New()
	svc := &fakePresskitService{
		getByIDFn: func(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
			return nil, presskit.ErrPresskitNotFound
		},
	}
	router := newRouter(NewPresskitHandler(svc), &userID)

	req := httptest.NewRequest(http.MethodGet, "/presskits/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "PRESSKIT_NOT_FOUND", body["error_code"])
	assert.Equal(t, "Presskit no encontrado", body["message"])
}

func TestCreateWithoutIdentity(t *testing.T) {
	router := newRouter(NewPresskitHandler(&fakePresskitService{}), nil)

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(createPayload())
	req := httptest.NewRequest(http.MethodPost, "/presskits", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "UNAUTHORIZED", body["error_code"])
}

func TestGetPublicPassesRequestMeta(t *testing.T) {
	slug := "dj-shadow"
	var captured analytics.RequestMeta

	svc := &fakePresskitService{
		getPublicFn: func(ctx context.Context, gotSlug string, meta analytics.RequestMeta) (*presskit.Presskit, error) {
			assert.Equal(t, slug, gotSlug)
			captured = meta
			publicSlug := gotSlug
			return &presskit.Presskit{
				ID:         uuid.New(),
				Status:     presskit.StatusPublished,
				IsPublic:   true,
				PublicSlug: &publicSlug,
				ViewCount:  7,
			}, nil
		},
	}
	router := newRouter(NewPresskitHandler(svc), nil)

	req := httptest.NewRequest(http.MethodGet, "/p/"+slug, nil)
	req.Header.Set("User-Agent", "curl/8.0")
	req.Header.Set("Referer", "https://example.com/lineup")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "curl/8.0", captured.UserAgent)
	assert.Equal(t, "https://example.com/lineup", captured.Referrer)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["view_count"])
}

func TestGetPublicUnknownSlug(t *testing.T) {
	svc := &fakePresskitService{
		getPublicFn: func(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error) {
			return nil, presskit.ErrPresskitNotFound
		},
	}
	router := newRouter(NewPresskitHandler(svc), nil)

	req := httptest.NewRequest(http.MethodGet, "/p/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "PRESSKIT_NOT_FOUND", body["error_code"])
}
