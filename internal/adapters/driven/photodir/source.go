package photodir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PhotoSource = (*Source)(nil)

// imageExtensions are the accepted file extensions, lower case.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Source reads photos from local directories.
type Source struct {
	// Recursive controls whether Scan and Watch descend into subdirectories.
	Recursive bool
}

// New creates a recursive photo source.
func New() *Source {
	return &Source{Recursive: true}
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scan returns the image files under root sorted by path.
func (s *Source) Scan(ctx context.Context, root string) ([]domain.PhotoFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if !IsImageFile(root) {
			return nil, fmt.Errorf("%w: %s is not an image file", domain.ErrUnsupportedFormat, root)
		}
		return []domain.PhotoFile{photoFile(root, info)}, nil
	}

	var files []domain.PhotoFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !s.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsImageFile(path) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, photoFile(path, fi))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	logger.Debug("Scanned %s: %d image(s)", root, len(files))
	return files, nil
}

// Read returns the contents of an image file.
func (s *Source) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

// Watch reports image changes under root until ctx is done.
func (s *Source) Watch(ctx context.Context, root string) (<-chan domain.PhotoChange, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := s.addTree(watcher, root); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan domain.PhotoChange)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if s.Recursive && event.Has(fsnotify.Create) {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() && !isHidden(fi.Name()) {
						if err := s.addTree(watcher, event.Name); err != nil {
							logger.Warn("Cannot watch %s: %v", event.Name, err)
						}
						continue
					}
				}
				change := handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// addTree watches dir and, when recursive, its non-hidden subdirectories.
func (s *Source) addTree(watcher *fsnotify.Watcher, dir string) error {
	if !s.Recursive {
		return watcher.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// handleFsEvent maps an fsnotify event to a photo change. Events for
// hidden files, non-images and attribute-only changes yield nil.
func handleFsEvent(event fsnotify.Event) *domain.PhotoChange {
	name := filepath.Base(event.Name)
	if isHidden(name) || !IsImageFile(name) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.PhotoChange{Type: domain.ChangeDeleted, Path: event.Name}
	case event.Has(fsnotify.Create):
		return &domain.PhotoChange{Type: domain.ChangeCreated, Path: event.Name}
	case event.Has(fsnotify.Write):
		return &domain.PhotoChange{Type: domain.ChangeUpdated, Path: event.Name}
	default:
		return nil
	}
}

func photoFile(path string, fi fs.FileInfo) domain.PhotoFile {
	return domain.PhotoFile{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
}

// isHidden reports whether a single path element is hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
