// File: internal/handler/products/upload.go
package products

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"sync"

	"maya-shop/internal/database"
	"maya-shop/internal/dto"
	"maya-shop/internal/model"
	"maya-shop/internal/storage"
	"maya-shop/internal/store"
	"maya-shop/internal/worker"

	"github.com/labstack/echo/v4"
)

// 以下變數可於測試中替換
var (
	createProduct   = store.CreateProduct
	addProductImage = store.AddProductImage
)

// 單次上傳的圖片數量上限
const maxImages = 5

// UploadProductHandler 建立商品並上傳圖片
// @Summary     Upload a product
// @Description 以 multipart form 建立商品，images 欄位需附 1 到 5 張圖片，圖片會平行處理
// @Tags        products
// @Accept      multipart/form-data
// @Produce     json
// @Param       name        formData string true  "商品名稱"
// @Param       price       formData number true  "價格，需為正數"
// @Param       stock       formData integer true "庫存，不可為負"
// @Param       description formData string true  "商品描述"
// @Param       images      formData file   true  "商品圖片 (最多 5 張)"
// @Success     201 {object} dto.ProductResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /productUpload [post]
func UploadProductHandler(db database.DB, images storage.ImageStore, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ProductUploadRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "All fields are required (name, price, stock, description)."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		form, err := c.MultipartForm()
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "At least one image is required."})
		}
		files := form.File["images"]
		if len(files) == 0 {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "At least one image is required."})
		}
		if len(files) > maxImages {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("A maximum of %d images is allowed.", maxImages)})
		}
		for _, f := range files {
			if !strings.HasPrefix(f.Header.Get("Content-Type"), "image/") {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Only image files are allowed."})
			}
		}

		ctx := c.Request().Context()

		product, err := createProduct(ctx, db, &model.Product{
			Name:        req.Name,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
		})
		if err != nil {
			c.Logger().Errorf("create product failed: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error uploading product"})
		}

		// 圖片先落地成暫存檔再交給工作池平行上傳
		paths := make([]string, len(files))
		for i, f := range files {
			p, err := saveTemp(f)
			if err != nil {
				c.Logger().Errorf("stage image failed: %v", err)
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error uploading product"})
			}
			defer os.Remove(p)
			paths[i] = p
		}

		urls := make([]string, len(paths))
		errs := make([]error, len(paths))
		var wg sync.WaitGroup
		for i, p := range paths {
			wg.Add(1)
			i, p := i, p
			pool.Submit(func() {
				defer wg.Done()
				url, err := images.Upload(ctx, p, storage.UploadOptions{Folder: "products"})
				if err != nil {
					errs[i] = err
					return
				}
				if err := addProductImage(ctx, db, product.ID, url); err != nil {
					errs[i] = err
					return
				}
				urls[i] = url
			})
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				c.Logger().Errorf("product %d image upload failed: %v", product.ID, err)
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error uploading product"})
			}
		}

		product.Images = urls
		return c.JSON(http.StatusCreated, dto.ProductResponse{
			Message: "Product uploaded successfully",
			Product: product,
		})
	}
}

// saveTemp 將上傳檔寫入暫存檔並回傳路徑
func saveTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "product-image-*")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
