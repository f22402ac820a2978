package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type fileProjectReader struct {
	logger outbound.LoggerPort
	dir    string
}

// NewFileProjectReader reads projects stored as <dir>/<projectID>.json.
func NewFileProjectReader(logger outbound.LoggerPort, dir string) outbound.ProjectReaderPort {
	return &fileProjectReader{
		logger: logger,
		dir:    dir,
	}
}

func (f *fileProjectReader) Read(ctx context.Context, projectID string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if projectID == "" || strings.ContainsAny(projectID, `/\`) || projectID == "." || projectID == ".." {
		return nil, domain.ErrProjectNotFound
	}

	project, err := f.readJSONFile(filepath.Join(f.dir, projectID+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	if project.ID == "" {
		project.ID = projectID
	}

	return project, nil
}

func (f *fileProjectReader) readJSONFile(fileName string) (*domain.Project, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			f.logger.Error(err, "failed to close file")
		}
	}(file)

	var project domain.Project
	if err := json.NewDecoder(file).Decode(&project); err != nil {
		f.logger.ErrorWithFields(err, "failed to decode json", map[string]interface{}{
			"file": fileName,
		})
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(fileName), err)
	}

	return &project, nil
}
