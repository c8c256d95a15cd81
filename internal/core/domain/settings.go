package domain

import "fmt"

// PageSettings holds paper and margin configuration.
type PageSettings struct {
	// Size is the paper size; width and height follow from it.
	Size PageSize

	// Margin is the distance from every page edge, in millimetres.
	Margin float64

	// FooterHeight is the band reserved for the page footer.
	FooterHeight float64
}

// Config returns the physical page configuration for these settings.
func (p PageSettings) Config() PageConfig {
	w, h := p.Size.Dimensions()
	return PageConfig{
		Width:        w,
		Height:       h,
		Margin:       p.Margin,
		FooterHeight: p.FooterHeight,
	}
}

// ImageSettings controls how photos are processed on ingestion.
type ImageSettings struct {
	// Compress enables downscaling and JPEG re-encoding.
	Compress bool

	// MaxDimension bounds the longest side in pixels.
	MaxDimension int

	// Quality is the JPEG quality, 1-100.
	Quality int
}

// Options returns the compression options for these settings.
func (i ImageSettings) Options() CompressOptions {
	return CompressOptions{MaxDimension: i.MaxDimension, Quality: i.Quality}
}

// Validate checks the image settings are usable.
func (i ImageSettings) Validate() error {
	if i.Quality < 1 || i.Quality > 100 {
		return fmt.Errorf("%w: image quality must be 1-100, got %d", ErrInvalidConfig, i.Quality)
	}
	if i.MaxDimension < MinImageDimension {
		return fmt.Errorf("%w: max dimension must be at least %d, got %d",
			ErrInvalidConfig, MinImageDimension, i.MaxDimension)
	}
	return nil
}

// MinImageDimension is the smallest accepted image.max_dimension.
const MinImageDimension = 64

// ExportSettings controls where and how PDFs are written.
type ExportSettings struct {
	// Directory is where exported PDFs are written. Empty means the
	// current working directory.
	Directory string

	// Author is the default report author.
	Author string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Page holds paper settings.
	Page PageSettings

	// Grid holds photo grid settings.
	Grid GridConfig

	// Image holds ingestion settings.
	Image ImageSettings

	// Export holds PDF output settings.
	Export ExportSettings
}

// Validate checks every section of the settings.
func (s AppSettings) Validate() error {
	if !s.Page.Size.IsValid() {
		return fmt.Errorf("%w: unknown page size %q", ErrInvalidConfig, s.Page.Size)
	}
	if err := s.Page.Config().Validate(); err != nil {
		return err
	}
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	return s.Image.Validate()
}

// DefaultAppSettings returns settings with sensible defaults.
// A4 portrait with a two-column grid, matching the printed report layout.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Page: PageSettings{
			Size:         PageSizeA4,
			Margin:       15,
			FooterHeight: 10,
		},
		Grid: GridConfig{
			Columns:      2,
			CellGap:      8,
			RowGap:       10,
			HeaderHeight: 10,
		},
		Image: ImageSettings{
			Compress:     true,
			MaxDimension: 1600,
			Quality:      80,
		},
		Export: ExportSettings{},
	}
}

// Setting is one key of the settings file with its effective value.
type Setting struct {
	// Key is the dot-notation config key, such as "grid.columns".
	Key string

	// Value is the effective value formatted for display.
	Value string

	// Default is the value used when the key is not set.
	Default string
}

// IsDefault reports whether the effective value equals the default.
func (s Setting) IsDefault() bool {
	return s.Value == s.Default
}
