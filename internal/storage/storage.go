package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	pkgerrors "github.com/pkg/errors"
)

// Storer Keeps downloaded datasets on disk. All paths are relative to the storage location.
type Storer interface {
	Store(in io.Reader, path ...string) (StoredFile, error)
	Load(path ...string) (io.ReadCloser, error)
	Find(path ...string) (StoredFile, bool, error)
}

type StoredFile struct {
	Path         string
	AbsolutePath string
}

func NewLocalStorage(cfg config.Storage) (Storer, error) {
	location := filepath.Clean(cfg.LocationOrDefault())
	if err := os.MkdirAll(location, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s %w", location, err)
	}

	return &localStorage{
		location: location,
		mode:     cfg.Mode,
	}, nil
}

type localStorage struct {
	location string
	mode     string
}

func (s *localStorage) fromBasePath(path ...string) (string, error) {
	targetDir := filepath.Join(s.location, filepath.Join(path...))
	targetDir = filepath.Clean(targetDir)

	if !strings.HasPrefix(targetDir, s.location) {
		return "", fmt.Errorf("path is not within base path, %s", s.location)
	}

	return targetDir, nil
}

func (s *localStorage) Store(r io.Reader, path ...string) (sf StoredFile, err error) {
	filePath, err := s.fromBasePath(path...)
	if err != nil {
		return StoredFile{}, err
	}

	if len(path) > 1 {
		if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
			return StoredFile{}, fmt.Errorf("failed to create sub dirs for %s %w", filePath, err)
		}
	}

	flags := os.O_RDWR | os.O_CREATE
	if s.mode == config.REPLACE {
		flags |= os.O_TRUNC // truncate existing file
	} else {
		flags |= os.O_EXCL // file must not exist
	}

	// #nosec G304 fromBasePath does already a path cleanup
	target, err := os.OpenFile(filePath, flags, 0600)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to create empty file %s with mode %s %w", filePath, s.mode, err)
	}
	defer func(toClose *os.File) {
		cErr := toClose.Close()
		if cErr != nil {
			// report close errors
			if err == nil {
				err = cErr
			} else {
				err = pkgerrors.Wrap(err, cErr.Error())
			}
		}
	}(target)

	if _, err = io.Copy(target, r); err != nil {
		return StoredFile{}, fmt.Errorf("failed to copy file %w", err)
	}

	if err = target.Sync(); err != nil {
		return StoredFile{}, fmt.Errorf("failed to sync file %w", err)
	}

	return s.storedFile(filePath), nil
}

func (s *localStorage) storedFile(absPath string) StoredFile {
	noBasePath := strings.TrimPrefix(absPath, s.location)
	noBasePath = strings.TrimPrefix(noBasePath, string(filepath.Separator))

	return StoredFile{
		AbsolutePath: absPath,
		Path:         noBasePath,
	}
}

func (s *localStorage) Load(path ...string) (io.ReadCloser, error) {
	filePath, err := s.fromBasePath(path...)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info %s %w", filePath, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("loading a directory is not supported")
	}

	// #nosec G304 fromBasePath does already a path cleanup
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s %w", filePath, err)
	}

	return file, nil
}

// Find returns the stored regular file at path. The bool is false if no such file exists.
func (s *localStorage) Find(path ...string) (StoredFile, bool, error) {
	filePath, err := s.fromBasePath(path...)
	if err != nil {
		return StoredFile{}, false, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StoredFile{}, false, nil
		}

		return StoredFile{}, false, fmt.Errorf("failed to get file info %s %w", filePath, err)
	}
	if !info.Mode().IsRegular() {
		return StoredFile{}, false, nil
	}

	return s.storedFile(filePath), true, nil
}
