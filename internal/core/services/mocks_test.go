package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// mockPhotoSource serves files from memory. Scan matches a file path
// exactly or any path under a directory prefix.
type mockPhotoSource struct {
	mu       sync.Mutex
	files    map[string][]byte
	scanErr  error
	changes  chan domain.PhotoChange
	watchErr error
}

func newMockPhotoSource(files map[string]string) *mockPhotoSource {
	m := &mockPhotoSource{files: make(map[string][]byte)}
	for path, data := range files {
		m.files[path] = []byte(data)
	}
	return m
}

func (m *mockPhotoSource) Scan(_ context.Context, root string) ([]domain.PhotoFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var out []domain.PhotoFile
	for path, data := range m.files {
		if path == root || strings.HasPrefix(path, root+"/") {
			out = append(out, domain.PhotoFile{Path: path, Name: filepath.Base(path), Size: int64(len(data))})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", root, domain.ErrNotFound)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *mockPhotoSource) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockPhotoSource) Watch(_ context.Context, _ string) (<-chan domain.PhotoChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.changes, nil
}

func (m *mockPhotoSource) put(path, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = []byte(data)
}

// mockImageProcessor treats file contents of the form "WxH" as an image of
// that size. Anything else is an unsupported format.
type mockImageProcessor struct {
	compressCalls int
}

func (m *mockImageProcessor) Inspect(r io.Reader) (domain.ImageInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ImageInfo{}, err
	}
	var w, h int
	if _, err := fmt.Sscanf(string(data), "%dx%d", &w, &h); err != nil {
		return domain.ImageInfo{}, domain.ErrUnsupportedFormat
	}
	return domain.ImageInfo{Width: w, Height: h, Format: "png"}, nil
}

func (m *mockImageProcessor) Compress(r io.Reader, opts domain.CompressOptions) ([]byte, domain.ImageInfo, error) {
	m.compressCalls++
	info, err := m.Inspect(r)
	if err != nil {
		return nil, domain.ImageInfo{}, err
	}
	if longest := max(info.Width, info.Height); longest > opts.MaxDimension {
		info.Width = info.Width * opts.MaxDimension / longest
		info.Height = info.Height * opts.MaxDimension / longest
	}
	info.Format = "jpeg"
	return []byte(fmt.Sprintf("%dx%d", info.Width, info.Height)), info, nil
}

// mockRenderer records the last render and writes a stub PDF.
type mockRenderer struct {
	mu     sync.Mutex
	calls  int
	report *domain.Report
	plan   *domain.ExportPlan
	err    error
}

func (m *mockRenderer) Render(_ context.Context, w io.Writer, report *domain.Report, plan *domain.ExportPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.report = report
	m.plan = plan
	if m.err != nil {
		return m.err
	}
	_, err := fmt.Fprintf(w, "%%PDF-mock %d pages", len(plan.Pages))
	return err
}

func (m *mockRenderer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
