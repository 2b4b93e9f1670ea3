// File: internal/storage/storage.go
package storage

import "context"

// UploadOptions 對應遠端圖床的上傳參數：目的資料夾與尺寸上限。
// MaxWidth/MaxHeight <= 0 表示不縮放。
type UploadOptions struct {
	Folder    string
	MaxWidth  int
	MaxHeight int
}

// ImageStore 定義圖片儲存服務介面。
// source 可為本機檔案路徑或 http(s) URL，回傳對外可存取的圖片 URL。
type ImageStore interface {
	Upload(ctx context.Context, source string, opts UploadOptions) (string, error)
}

type FakeStore struct {
	UploadFn func(ctx context.Context, source string, opts UploadOptions) (string, error)
}

// Upload 執行 Fake 設定或 panic
func (f *FakeStore) Upload(ctx context.Context, source string, opts UploadOptions) (string, error) {
	if f.UploadFn != nil {
		return f.UploadFn(ctx, source, opts)
	}
	panic("unexpected Upload")
}
