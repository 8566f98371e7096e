// Package preview holds rendered artifacts behind opaque handles so the web
// client can display a document before downloading it. Handles are a
// caller-owned resource: whoever creates one must release it when the
// preview is no longer displayed; nothing here expires them automatically.
package preview

import (
	"sync"

	"github.com/google/uuid"

	"github.com/de-tools/site-report/pkg/models/domain"
)

// Store is an in-memory handle registry, safe for concurrent exports.
type Store struct {
	mu      sync.Mutex
	handles map[string]domain.RenderedDocument
}

func NewStore() *Store {
	return &Store{handles: make(map[string]domain.RenderedDocument)}
}

// Put registers a rendered document and returns its handle id.
func (s *Store) Put(doc domain.RenderedDocument) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.handles[id] = doc
	s.mu.Unlock()
	return id
}

// Get returns the document behind id, if the handle is still held.
func (s *Store) Get(id string) (domain.RenderedDocument, bool) {
	s.mu.Lock()
	doc, ok := s.handles[id]
	s.mu.Unlock()
	return doc, ok
}

// Release frees the handle. Reports whether it existed.
func (s *Store) Release(id string) bool {
	s.mu.Lock()
	_, ok := s.handles[id]
	delete(s.handles, id)
	s.mu.Unlock()
	return ok
}

// Len reports the number of live handles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}
