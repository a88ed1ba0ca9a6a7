package storage

import (
	"context"
	"io"
)

// Object describes a stored upload. Path is the value recorded on documents.
type Object struct {
	Key         string `json:"key"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Store persists uploaded files under slash-separated keys ("cvs/name.pdf").
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Remove(ctx context.Context, key string) error
}
