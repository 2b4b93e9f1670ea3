// File: internal/storage/disk.go
package storage

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// newFilename 產生儲存檔名，測試可覆寫
var newFilename = func() string { return uuid.NewString() + ".jpg" }

// DiskStore 將圖片寫入本機目錄並以靜態路徑對外提供，
// 介面上等同遠端圖床：收 source、回 URL。
type DiskStore struct {
	root    string
	baseURL string
	client  *http.Client
}

// NewDiskStore 建立 DiskStore。root 為實體目錄，baseURL 為對外路徑前綴。
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}, nil
}

// Upload 讀取 source 圖片，必要時等比例縮小，存成 JPEG 後回傳 URL
func (s *DiskStore) Upload(ctx context.Context, source string, opts UploadOptions) (string, error) {
	reader, err := s.open(ctx, source)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	src, _, err := image.Decode(reader)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	dst := scaleToLimit(src, opts.MaxWidth, opts.MaxHeight)

	dir := s.root
	if opts.Folder != "" {
		dir = filepath.Join(s.root, opts.Folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create folder: %w", err)
		}
	}

	name := newFilename()
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	if opts.Folder != "" {
		return s.baseURL + "/" + path.Join(opts.Folder, name), nil
	}
	return s.baseURL + "/" + name, nil
}

func (s *DiskStore) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return f, nil
}

// scaleToLimit 等比例縮小到上限內，不放大 (對應圖床 crop: limit)
func scaleToLimit(src image.Image, maxW, maxH int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}

	scaleW, scaleH := 1.0, 1.0
	if maxW > 0 && w > maxW {
		scaleW = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		scaleH = float64(maxH) / float64(h)
	}
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	targetW := int(float64(w) * scale)
	targetH := int(float64(h) * scale)
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
