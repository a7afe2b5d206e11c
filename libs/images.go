package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrImageTooLarge  = errors.New("file size exceeds maximum allowed size")
	ErrImageType      = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	ErrImageNotStored = errors.New("image storage returned no url")
)

type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (url, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

func ValidateImage(header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return ErrImageTooLarge
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return ErrImageType
	}
	return nil
}

// NewImageStore uses Cloudinary when credentials are present and the local
// upload directory otherwise.
func NewImageStore(cloudinaryURL, cloudName, apiKey, apiSecret, uploadDir string, log *zap.Logger) (ImageStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	case cloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	default:
		log.Info("cloudinary not configured, storing images locally", zap.String("dir", uploadDir))
		return NewLocalImageStore(uploadDir, "/uploads"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, string, error) {
	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(filename, " ", "_"))
	publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	if url == "" {
		return "", "", ErrImageNotStored
	}
	return url, result.PublicID, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}

// LocalImageStore writes uploads under dir and serves them from urlPrefix.
// The public id is the path relative to dir.
type LocalImageStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewLocalImageStore(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/"), now: time.Now}
}

func (s *LocalImageStore) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return "", "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d%s", s.now().UnixNano(), ext)
	out, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	publicID := filepath.ToSlash(filepath.Join(folder, name))
	return s.urlPrefix + "/" + publicID, publicID, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	clean := filepath.Clean("/" + publicID)
	err := os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
