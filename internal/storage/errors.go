package storage

import "errors"

var (
	// ErrStoreUnavailable indicates Elasticsearch could not be reached at
	// client construction time.
	ErrStoreUnavailable = errors.New("elasticsearch is unavailable")
	// ErrDocumentNotFound indicates no document exists for the requested domain
	ErrDocumentNotFound = errors.New("document not found")
	// ErrIndexNotFound indicates the target index does not exist
	ErrIndexNotFound = errors.New("index not found")
	// ErrClientNotInitialized indicates the Elasticsearch client is nil
	ErrClientNotInitialized = errors.New("elasticsearch client is not initialized")
)
