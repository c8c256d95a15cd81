package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/pagination"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPageSize         = "page.size"
	keyPageMargin       = "page.margin"
	keyPageFooterHeight = "page.footer_height"
	keyGridColumns      = "grid.columns"
	keyGridCellGap      = "grid.cell_gap"
	keyGridRowGap       = "grid.row_gap"
	keyGridHeaderHeight = "grid.header_height"
	keyImageCompress    = "image.compress"
	keyImageMaxDim      = "image.max_dimension"
	keyImageQuality     = "image.quality"
	keyExportDirectory  = "export.directory"
	keyExportAuthor     = "export.author"
)

var settingKeys = []string{
	keyPageSize,
	keyPageMargin,
	keyPageFooterHeight,
	keyGridColumns,
	keyGridCellGap,
	keyGridRowGap,
	keyGridHeaderHeight,
	keyImageCompress,
	keyImageMaxDim,
	keyImageQuality,
	keyExportDirectory,
	keyExportAuthor,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore

	mu        sync.RWMutex
	overrides map[string]string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or unparseable values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	if err := s.applyOverrides(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults
	}

	settings := &domain.AppSettings{
		Page: domain.PageSettings{
			Size:         s.getPageSize(defaults.Page.Size),
			Margin:       s.getFloat(keyPageMargin, defaults.Page.Margin),
			FooterHeight: s.getFloat(keyPageFooterHeight, defaults.Page.FooterHeight),
		},
		Grid: domain.GridConfig{
			Columns:      s.getInt(keyGridColumns, defaults.Grid.Columns),
			CellGap:      s.getFloat(keyGridCellGap, defaults.Grid.CellGap),
			RowGap:       s.getFloat(keyGridRowGap, defaults.Grid.RowGap),
			HeaderHeight: s.getFloat(keyGridHeaderHeight, defaults.Grid.HeaderHeight),
		},
		Image: domain.ImageSettings{
			Compress:     s.getBool(keyImageCompress, defaults.Image.Compress),
			MaxDimension: s.getInt(keyImageMaxDim, defaults.Image.MaxDimension),
			Quality:      s.getInt(keyImageQuality, defaults.Image.Quality),
		},
		Export: domain.ExportSettings{
			Directory: s.getString(keyExportDirectory, defaults.Export.Directory),
			Author:    s.getString(keyExportAuthor, defaults.Export.Author),
		},
	}
	return settings
}

// Override sets key to value for the lifetime of the service without
// persisting it. Overrides take precedence over stored values.
func (s *SettingsService) Override(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if err := applySetting(settings, key, value); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overrides == nil {
		s.overrides = make(map[string]string)
	}
	s.overrides[key] = value
	return nil
}

func (s *SettingsService) applyOverrides(settings *domain.AppSettings) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, key := range settingKeys {
		value, ok := s.overrides[key]
		if !ok {
			continue
		}
		if err := applySetting(settings, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := validateSettings(settings); err != nil {
		return err
	}
	for _, key := range settingKeys {
		if err := s.configStore.Set(key, settingValue(settings, key)); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := applySetting(settings, key, strings.TrimSpace(value)); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := s.configStore.Set(key, settingValue(settings, key)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Validate checks the current settings can produce a layout.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// List returns every key with its effective and default value.
func (s *SettingsService) List() ([]domain.Setting, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	defaults := domain.DefaultAppSettings()

	out := make([]domain.Setting, len(settingKeys))
	for i, key := range settingKeys {
		out[i] = domain.Setting{
			Key:     key,
			Value:   SettingString(settings, key),
			Default: SettingString(&defaults, key),
		}
	}
	return out, nil
}

// SettingString formats the value of key in settings for display.
func SettingString(settings *domain.AppSettings, key string) string {
	switch v := settingValue(settings, key).(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// validateSettings also checks the page can hold a header and one row,
// which needs the grid metrics the domain alone does not compute.
func validateSettings(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return pagination.Validate(settings.Page.Config(), settings.Grid)
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// settingValue returns the typed value stored in the config file for key.
func settingValue(settings *domain.AppSettings, key string) any {
	switch key {
	case keyPageSize:
		return settings.Page.Size.String()
	case keyPageMargin:
		return settings.Page.Margin
	case keyPageFooterHeight:
		return settings.Page.FooterHeight
	case keyGridColumns:
		return settings.Grid.Columns
	case keyGridCellGap:
		return settings.Grid.CellGap
	case keyGridRowGap:
		return settings.Grid.RowGap
	case keyGridHeaderHeight:
		return settings.Grid.HeaderHeight
	case keyImageCompress:
		return settings.Image.Compress
	case keyImageMaxDim:
		return settings.Image.MaxDimension
	case keyImageQuality:
		return settings.Image.Quality
	case keyExportDirectory:
		return settings.Export.Directory
	case keyExportAuthor:
		return settings.Export.Author
	default:
		return nil
	}
}

func applySetting(settings *domain.AppSettings, key, value string) error {
	var err error
	switch key {
	case keyPageSize:
		size := domain.PageSize(strings.ToLower(value))
		if !size.IsValid() {
			return fmt.Errorf("%w: unknown page size %q", domain.ErrInvalidInput, value)
		}
		settings.Page.Size = size
	case keyPageMargin:
		settings.Page.Margin, err = parseFloat(key, value)
	case keyPageFooterHeight:
		settings.Page.FooterHeight, err = parseFloat(key, value)
	case keyGridColumns:
		settings.Grid.Columns, err = parseInt(key, value)
	case keyGridCellGap:
		settings.Grid.CellGap, err = parseFloat(key, value)
	case keyGridRowGap:
		settings.Grid.RowGap, err = parseFloat(key, value)
	case keyGridHeaderHeight:
		settings.Grid.HeaderHeight, err = parseFloat(key, value)
	case keyImageCompress:
		settings.Image.Compress, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
	case keyImageMaxDim:
		settings.Image.MaxDimension, err = parseInt(key, value)
	case keyImageQuality:
		settings.Image.Quality, err = parseInt(key, value)
	case keyExportDirectory:
		settings.Export.Directory = value
	case keyExportAuthor:
		settings.Export.Author = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return err
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number", domain.ErrInvalidInput, key)
	}
	return f, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getFloat treats a stored zero as a real value; margins and gaps may be 0.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPageSize(defaultVal domain.PageSize) domain.PageSize {
	val := s.configStore.GetString(keyPageSize)
	if val == "" {
		return defaultVal
	}
	size := domain.PageSize(strings.ToLower(val))
	if !size.IsValid() {
		return defaultVal
	}
	return size
}
