package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore uploads data URLs under <folder>/<complaint sid>.
// Payloads that are already URLs are kept unchanged.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
	logger logger.Interface
}

func NewCloudinaryStore(cfg config.StorageConfig, log logger.Interface) (*CloudinaryStore, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryStore{
		api:    &cld.Upload,
		folder: cfg.Folder,
		logger: log,
	}, nil
}

func (s *CloudinaryStore) Store(ctx context.Context, complaintSID string, payload string) (string, error) {
	if !isDataURL(payload) {
		return payload, nil
	}

	overwrite := true
	result, err := s.api.Upload(ctx, payload, uploader.UploadParams{
		PublicID:     complaintSID,
		Folder:       s.folder,
		Overwrite:    &overwrite,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}

	s.logger.Debugw("complaint image uploaded",
		"complaint_sid", complaintSID,
		"public_id", result.PublicID,
		"bytes", result.Bytes,
	)
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Remove(ctx context.Context, complaintSID string) error {
	_, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(complaintSID),
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *CloudinaryStore) publicID(complaintSID string) string {
	if s.folder == "" {
		return complaintSID
	}
	return s.folder + "/" + complaintSID
}
