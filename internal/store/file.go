package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cailloux/agenda/internal/task"
)

// FileStore is a TaskStore backed by a single JSON file. It stands in
// for whatever store the surrounding application wires up; the core
// only depends on the TaskStore interface.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

type tasksFile struct {
	Tasks []task.Task `json:"tasks"`
}

func (s *FileStore) load() (tasksFile, error) {
	var tf tasksFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return tf, nil
		}
		return tf, fmt.Errorf("read tasks file: %w", err)
	}
	if err := json.Unmarshal(data, &tf); err != nil {
		return tf, fmt.Errorf("parse tasks file: %w", err)
	}
	return tf, nil
}

// save writes through a temp file and renames, so a crash mid-write
// never leaves a truncated store behind.
func (s *FileStore) save(tf tasksFile) error {
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}
	return nil
}

func (s *FileStore) ListTasks() ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf, err := s.load()
	if err != nil {
		return nil, err
	}
	return tf.Tasks, nil
}

func (s *FileStore) UpdateTaskStatus(id string, status task.Status) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf, err := s.load()
	if err != nil {
		return task.Task{}, err
	}
	for i := range tf.Tasks {
		if tf.Tasks[i].ID != id {
			continue
		}
		if err := task.ValidateTransition(tf.Tasks[i].Status, status); err != nil {
			return task.Task{}, fmt.Errorf("update task %s: %w", id, err)
		}
		tf.Tasks[i].Status = status
		if err := s.save(tf); err != nil {
			return task.Task{}, err
		}
		return tf.Tasks[i], nil
	}
	return task.Task{}, fmt.Errorf("update task %s: not found", id)
}

func (s *FileStore) UpdateTaskTags(id string, tags []string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf, err := s.load()
	if err != nil {
		return task.Task{}, err
	}
	for i := range tf.Tasks {
		if tf.Tasks[i].ID != id {
			continue
		}
		tf.Tasks[i].Tags = tags
		if err := s.save(tf); err != nil {
			return task.Task{}, err
		}
		return tf.Tasks[i], nil
	}
	return task.Task{}, fmt.Errorf("update task %s: not found", id)
}

// PutTask inserts or replaces a task. Used by tests and by the list
// command's seed flag.
func (s *FileStore) PutTask(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf, err := s.load()
	if err != nil {
		return err
	}
	for i := range tf.Tasks {
		if tf.Tasks[i].ID == t.ID {
			tf.Tasks[i] = t
			return s.save(tf)
		}
	}
	tf.Tasks = append(tf.Tasks, t)
	return s.save(tf)
}
