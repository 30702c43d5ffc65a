// Package storage keeps complaint photos. Photos arrive inline as data URLs;
// with Cloudinary configured they are uploaded and replaced by a hosted URL.
package storage

import (
	"context"
	"strings"

	"github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// ImageStore matches the contract the complaint use cases depend on.
type ImageStore interface {
	Store(ctx context.Context, complaintSID string, payload string) (string, error)
	Remove(ctx context.Context, complaintSID string) error
}

// New returns the Cloudinary store when credentials are set, the inline store otherwise.
func New(cfg config.StorageConfig, log logger.Interface) (ImageStore, error) {
	if !cfg.CloudinaryEnabled() {
		log.Infow("cloudinary not configured, complaint images stay inline")
		return NewInlineStore(), nil
	}

	store, err := NewCloudinaryStore(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Infow("complaint images are uploaded to cloudinary", "folder", cfg.Folder)
	return store, nil
}

func isDataURL(payload string) bool {
	return strings.HasPrefix(payload, "data:")
}

// InlineStore keeps the payload on the complaint record as-is.
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Store(ctx context.Context, complaintSID string, payload string) (string, error) {
	return payload, nil
}

func (s *InlineStore) Remove(ctx context.Context, complaintSID string) error {
	return nil
}
