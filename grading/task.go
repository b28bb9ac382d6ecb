package grading

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Task is a task fixture: a reference submission plus its expected output.
type Task struct {
	ID             string   `yaml:"id"`
	Title          string   `yaml:"title"`
	Language       string   `yaml:"language"`
	Source         string   `yaml:"source"`
	ExpectedOutput string   `yaml:"expected_output"`
	Inputs         []string `yaml:"inputs"`
}

// Submission converts the fixture into a gradable submission.
func (t Task) Submission() (Submission, error) {
	lang, err := ParseLanguage(t.Language)
	if err != nil {
		return Submission{}, fmt.Errorf("task %s: %w", t.ID, err)
	}
	return Submission{
		TaskID:   t.ID,
		Language: lang,
		Source:   t.Source,
		Expected: t.ExpectedOutput,
		Inputs:   append([]string(nil), t.Inputs...),
	}, nil
}

// LoadTask reads one YAML fixture. The ID defaults to the file name.
func LoadTask(path string) (Task, error) {
	task := Task{}
	data, err := os.ReadFile(path)
	if err != nil {
		return task, fmt.Errorf("read task file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, &task); err != nil {
		return task, fmt.Errorf("parse task file %s failed: %w", path, err)
	}
	if task.ID == "" {
		task.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(task.Source) == "" {
		return task, fmt.Errorf("task %s: source is required", task.ID)
	}
	if _, err := ParseLanguage(task.Language); err != nil {
		return task, fmt.Errorf("task %s: %w", task.ID, err)
	}
	return task, nil
}

// LoadTasks loads every path given. Directories contribute their *.yaml and
// *.yml files in name order.
func LoadTasks(paths ...string) ([]Task, error) {
	if len(paths) == 0 {
		return nil, errors.New("no task paths given")
	}
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("access %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", path, err)
		}
		var dirFiles []string
		for _, entry := range entries {
			ext := filepath.Ext(entry.Name())
			if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			dirFiles = append(dirFiles, filepath.Join(path, entry.Name()))
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}

	tasks := make([]Task, 0, len(files))
	for _, file := range files {
		task, err := LoadTask(file)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
