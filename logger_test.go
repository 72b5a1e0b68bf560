package sqlforge

import (
	"sync"
	"time"
)

// captureLogger collects Logger calls.
type captureLogger struct {
	mu      sync.Mutex
	queries []string
	errs    []error
}

func (l *captureLogger) Log(query string, _ []any, _ time.Duration, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, query)
	l.errs = append(l.errs, err)
}
