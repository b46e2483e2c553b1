package sheet

import (
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry owns the shared sheet and registers and removes named rules.
// Register and Unregister are atomic with respect to each other.
type Registry struct {
	mu      sync.Mutex
	sheet   *Sheet
	limit   int
	logger  *log.Logger
	metrics *metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger insertion failures are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithLimit caps the number of rules the sheet accepts.
func WithLimit(limit int) Option {
	return func(r *Registry) {
		r.limit = limit
	}
}

// WithMetrics registers the registry's collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		r.metrics = newMetrics(reg)
	}
}

// NewRegistry creates an isolated registry. The sheet is created on the
// first registration.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Sheet returns the shared sheet, or nil before anything was registered.
func (r *Registry) Sheet() *Sheet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sheet
}

// Register inserts text at the end of the shared sheet, creating the sheet on
// first use. A rejected rule is logged and the sheet and attempted index are
// still returned; callers carry on without the animation.
func (r *Registry) Register(name, text string) (*Sheet, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sheet == nil {
		r.sheet = NewSheet(Tag, r.limit)
	}
	index := r.sheet.Len()

	err := r.insert(name, text, index)
	if err != nil {
		r.logger.Printf("sheet: error inserting rule %s: %v", name, err)
		r.metrics.failed()
	} else {
		r.metrics.set(r.sheet.Len())
	}
	return r.sheet, index
}

func (r *Registry) insert(name, text string, index int) error {
	rule, err := ParseRule(text)
	if err != nil {
		return err
	}
	if rule.Name != name {
		return ErrMalformedRule
	}
	return r.sheet.InsertRule(text, index)
}

// Unregister removes the first rule named name from sheet. Unknown names and
// a nil sheet are ignored, so repeated calls are safe.
func (r *Registry) Unregister(sheet *Sheet, name string) {
	if sheet == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	index := sheet.IndexOf(name)
	if index < 0 {
		return
	}
	if err := sheet.DeleteRule(index); err != nil {
		r.logger.Printf("sheet: error deleting rule %s: %v", name, err)
		return
	}
	r.metrics.removed()
	r.metrics.set(sheet.Len())
}
