// Package storage contains a durable key/value medium interface.
package storage

import (
	"context"
	"fmt"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = fmt.Errorf("not found")

// Storage keeps opaque documents under opaque keys. Put overwrites the whole document.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
