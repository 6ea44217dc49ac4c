// Package clip writes exported text to the system clipboard.
package clip

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend is present
// (for example a headless session without xclip/xsel/wl-copy)
var ErrUnavailable = errors.New("clipboard unavailable")

// writeAll is a package-level variable to allow mocking in tests
var writeAll = clipboard.WriteAll

// Writer receives copied text
type Writer interface {
	Write(text string) error
}

// System writes to the OS clipboard
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Stream writes the text to an io.Writer followed by a newline, for
// `--stdout` and piped output
type Stream struct {
	W io.Writer
}

func (s Stream) Write(text string) error {
	_, err := fmt.Fprintln(s.W, text)
	return err
}

// Memory keeps every copied text; used by tests and dry runs
type Memory struct {
	mu    sync.Mutex
	texts []string
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return nil
}

// Last returns the most recent text, empty when nothing was copied
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// Len returns how many texts were copied
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.texts)
}
