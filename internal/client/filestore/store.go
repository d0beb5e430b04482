// Package filestore uploads photo bytes and returns where they can be
// fetched from.
package filestore

import (
	"context"

	"github.com/dmitrijs2005/bereal/internal/client/models"
)

// Store persists a binary remotely.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (models.File, error)
}

// Uploader is the part of the backend gateway ParseStore needs.
type Uploader interface {
	UploadFile(ctx context.Context, name, contentType string, data []byte) (models.File, error)
}

// ParseStore stores files through the backend's own file endpoint.
type ParseStore struct {
	uploader Uploader
}

func NewParseStore(u Uploader) *ParseStore {
	return &ParseStore{uploader: u}
}

func (s *ParseStore) Put(ctx context.Context, name, contentType string, data []byte) (models.File, error) {
	return s.uploader.UploadFile(ctx, name, contentType, data)
}
