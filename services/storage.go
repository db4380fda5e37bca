package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"darakbang/config"
)

// StorageService uploads notice images to Cloudinary and hands back durable
// delivery URLs that get stored on the Notice record.
type StorageService struct {
	cld *cloudinary.Cloudinary
}

var storageService *StorageService

// InitStorageService configures the singleton uploader. Image upload is
// optional: with no Cloudinary URL configured the endpoint reports the
// feature as unavailable instead of failing startup.
func InitStorageService(cfg *config.Config) error {
	if cfg.Cloudinary.URL == "" {
		log.Println("Cloudinary URL not configured, notice image upload disabled")
		return nil
	}
	cld, err := cloudinary.NewFromURL(cfg.Cloudinary.URL)
	if err != nil {
		return fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	storageService = &StorageService{cld: cld}
	return nil
}

// GetStorageService returns the singleton uploader, nil when disabled.
func GetStorageService() *StorageService {
	return storageService
}

// UploadNoticeImage stores the file under notices/ keyed by upload time and
// original filename, mirroring how the mobile app locates banner images.
func (s *StorageService) UploadNoticeImage(ctx context.Context, file multipart.File, filename string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	publicID := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), base)

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "notices",
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload notice image: %w", err)
	}
	return result.SecureURL, nil
}
