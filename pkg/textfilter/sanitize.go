package textfilter

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer applies an HTML allow-list to untrusted markup.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(html string) string
}

var (
	sanitizerMu sync.RWMutex
	sanitizer   Sanitizer = bluemonday.UGCPolicy()
)

// SetSanitizer replaces the process-wide sanitizer. Passing nil restores the
// default user-generated-content policy.
func SetSanitizer(s Sanitizer) {
	sanitizerMu.Lock()
	defer sanitizerMu.Unlock()
	if s == nil {
		s = bluemonday.UGCPolicy()
	}
	sanitizer = s
}

// Sanitize runs raw HTML through the configured sanitizer.
func Sanitize(raw string) string {
	sanitizerMu.RLock()
	s := sanitizer
	sanitizerMu.RUnlock()
	return s.Sanitize(raw)
}
