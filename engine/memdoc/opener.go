package memdoc

import (
	"fmt"
	"sync"

	"github.com/bookforge/pagemark/engine"
)

// Opener maps paths to registered in-memory documents, satisfying
// engine.Opener. Open returns the registered document itself, not a copy;
// concurrent mutation of one document must be serialized by the caller,
// matching the engine contract.
type Opener struct {
	mu   sync.Mutex
	docs map[string]*Document
}

// NewOpener creates an empty opener.
func NewOpener() *Opener {
	return &Opener{docs: make(map[string]*Document)}
}

// Register makes doc available under path.
func (o *Opener) Register(path string, doc *Document) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.docs[path] = doc
}

// Open returns the document registered under path.
func (o *Opener) Open(path string) (engine.Document, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	doc, ok := o.docs[path]
	if !ok {
		return nil, fmt.Errorf("no document registered at %s", path)
	}
	doc.closed = false
	return doc, nil
}
