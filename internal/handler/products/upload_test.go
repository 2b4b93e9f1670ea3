package products

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync"
	"testing"
	"time"

	"maya-shop/internal/database"
	"maya-shop/internal/model"
	"maya-shop/internal/storage"
	"maya-shop/internal/store"
	"maya-shop/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	createProduct = store.CreateProduct
	addProductImage = store.AddProductImage
}

func buildMultipart(t *testing.T, imageCount int, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("name", "Mug"))
	require.NoError(t, w.WriteField("price", "9.9"))
	require.NoError(t, w.WriteField("stock", "3"))
	require.NoError(t, w.WriteField("description", "ceramic"))
	for i := 0; i < imageCount; i++ {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="img%d.png"`, i))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newUploadCtx(t *testing.T, e *echo.Echo, imageCount int, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body, ct := buildMultipart(t, imageCount, contentType)
	req := httptest.NewRequest(http.MethodPost, "/productUpload", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadProductHandler(t *testing.T) {
	e := echo.New()
	pool := worker.InlinePool{}

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("price must be positive")}
		ctx, rec := newUploadCtx(t, e, 1, "image/png")
		require.NoError(t, UploadProductHandler(nil, &storage.FakeStore{}, pool)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "price must be positive")
	})

	t.Run("no images", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newUploadCtx(t, e, 0, "image/png")
		require.NoError(t, UploadProductHandler(nil, &storage.FakeStore{}, pool)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "At least one image is required.")
	})

	t.Run("too many images", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newUploadCtx(t, e, 6, "image/png")
		require.NoError(t, UploadProductHandler(nil, &storage.FakeStore{}, pool)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "maximum of 5 images")
	})

	t.Run("non-image file", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newUploadCtx(t, e, 1, "application/pdf")
		require.NoError(t, UploadProductHandler(nil, &storage.FakeStore{}, pool)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Only image files are allowed.")
	})

	t.Run("create product error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createProduct = func(context.Context, database.DB, *model.Product) (*model.Product, error) {
			return nil, errors.New("insert")
		}
		ctx, rec := newUploadCtx(t, e, 1, "image/png")
		require.NoError(t, UploadProductHandler(nil, &storage.FakeStore{}, pool)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Error uploading product")
	})

	t.Run("image upload error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createProduct = func(_ context.Context, _ database.DB, p *model.Product) (*model.Product, error) {
			p.ID = 11
			return p, nil
		}
		images := &storage.FakeStore{
			UploadFn: func(context.Context, string, storage.UploadOptions) (string, error) {
				return "", errors.New("upload")
			},
		}
		ctx, rec := newUploadCtx(t, e, 2, "image/png")
		require.NoError(t, UploadProductHandler(nil, images, pool)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Error uploading product")
	})

	t.Run("success fans out through pool", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createProduct = func(_ context.Context, _ database.DB, p *model.Product) (*model.Product, error) {
			require.Equal(t, "Mug", p.Name)
			require.Equal(t, 9.9, p.Price)
			require.Equal(t, 3, p.Stock)
			p.ID = 11
			p.CreatedAt = time.Now()
			return p, nil
		}
		var mu sync.Mutex
		var savedURLs []string
		uploads := 0
		images := &storage.FakeStore{
			UploadFn: func(_ context.Context, source string, opts storage.UploadOptions) (string, error) {
				require.Equal(t, "products", opts.Folder)
				_, err := os.Stat(source)
				require.NoError(t, err)
				mu.Lock()
				uploads++
				n := uploads
				mu.Unlock()
				return fmt.Sprintf("/uploads/products/%d.jpg", n), nil
			},
		}
		addProductImage = func(_ context.Context, _ database.DB, productID int, url string) error {
			require.Equal(t, 11, productID)
			mu.Lock()
			savedURLs = append(savedURLs, url)
			mu.Unlock()
			return nil
		}
		ctx, rec := newUploadCtx(t, e, 3, "image/png")
		require.NoError(t, UploadProductHandler(nil, images, worker.NewPool(2))(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "Product uploaded successfully")
		require.Contains(t, rec.Body.String(), `"id":11`)
		require.Len(t, savedURLs, 3)
		require.Equal(t, 3, uploads)
	})
}
