package form

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spec-kit/early-access-service/internal/domain"
)

// FileFallback appends submissions to a local JSON-lines file when the form
// has no endpoint to post to.
type FileFallback struct {
	mu   sync.Mutex
	path string
}

// NewFileFallback creates a fallback store writing to path.
func NewFileFallback(path string) *FileFallback {
	return &FileFallback{path: path}
}

type fallbackRecord struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	SavedAt time.Time `json:"saved_at"`
}

// Save appends one submission record.
func (f *FileFallback) Save(sub domain.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open fallback file: %w", err)
	}
	defer file.Close()

	record := fallbackRecord{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		SavedAt: time.Now().UTC(),
	}
	if err := json.NewEncoder(file).Encode(record); err != nil {
		return fmt.Errorf("write fallback record: %w", err)
	}
	return nil
}
