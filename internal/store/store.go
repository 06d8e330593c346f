package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stickynote/internal/logging"
	"stickynote/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/atomic"
)

const (
	todosFileName   = "todos.json"
	historyFileName = "history.sqlite"
)

var (
	// ErrCorruptData means the todo file exists but is not parseable JSON.
	ErrCorruptData = errors.New("corrupt todo data")
	// ErrWriteFailure wraps any failure to persist the collection.
	ErrWriteFailure = errors.New("write todos")
)

var validate = validator.New()

// Store reads and writes the todo collection as a JSON array in Dir/todos.json.
//
// Load is lenient: a missing or empty file, or JSON that is not an
// array, yields an empty collection. Only unparseable bytes are reported as errors.
type Store struct {
	Dir string
	Log *logging.Logger
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Path() string {
	return filepath.Join(s.Dir, todosFileName)
}

func (s Store) HistoryPath() string {
	return filepath.Join(s.Dir, historyFileName)
}

func (s Store) log() *logging.Logger {
	return logging.OrNop(s.Log)
}

// LoadItems returns the persisted items in file order. Callers sort by Order.
func (s Store) LoadItems(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Path()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log().Infow("todos file not found, starting empty", "path", path)
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read todos: %w", err)
	}
	items, err := decodeItems(b, s.log())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func decodeItems(b []byte, log *logging.Logger) ([]model.Item, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		log.Infow("todos file is empty, starting empty")
		return []model.Item{}, nil
	}
	if !json.Valid(b) {
		var v any
		err := json.Unmarshal(b, &v)
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if b[0] != '[' {
		log.Warnw("todos file contains non-array data, starting empty", "kind", jsonKind(b[0]))
		return []model.Item{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	out := make([]model.Item, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		var it model.Item
		if err := json.Unmarshal(r, &it); err != nil {
			log.Warnw("skipping malformed todo entry", "index", i, "error", err)
			continue
		}
		it.ID = strings.TrimSpace(it.ID)
		if err := validate.Struct(it); err != nil {
			log.Warnw("skipping invalid todo entry", "index", i, "error", err)
			continue
		}
		if seen[it.ID] {
			log.Warnw("skipping duplicate todo id", "index", i, "id", it.ID)
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out, nil
}

func jsonKind(first byte) string {
	switch first {
	case '{':
		return "object"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// SaveItems replaces the file content with items, creating Dir when needed. The
// write goes through a temp file and rename so readers never see a partial file.
func (s Store) SaveItems(ctx context.Context, items []model.Item) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	b = append(b, '\n')

	if err := s.Ensure(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	path := s.Path()
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	_ = os.Chmod(path, 0o644)

	s.log().Debugw("todos saved", "path", path, "count", len(items))
	return nil
}
