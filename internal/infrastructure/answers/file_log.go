package answers

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/pkg/filesystem"
	"github.com/doeshing/pingbot/internal/ports"
)

// FileLog appends one "[ts] Q: ... | A: ..." line per cycle to a text file.
type FileLog struct {
	path string
	mu   sync.Mutex
}

// NewFileLog creates a log backed by path. Nothing is touched on disk until
// the first Append.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Append implements ports.AnswerLog. Each call opens, writes a single line
// and closes the file, so a record is never left half-written in a buffer.
func (l *FileLog) Append(result domain.CycleResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := filesystem.OpenAppend(l.path)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(result.AnswerLine() + "\n"); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Tail returns up to n most recent lines. A missing file yields no lines.
func (l *FileLog) Tail(n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	// Lines are unbounded: a failure record carries the whole flattened stderr.
	reader := bufio.NewReader(file)
	lines := make([]string, 0, n)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if len(lines) >= n {
				lines = lines[1:]
			}
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// Path returns the backing file path.
func (l *FileLog) Path() string {
	return l.path
}

var _ ports.AnswerLog = (*FileLog)(nil)
