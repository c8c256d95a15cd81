package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_NilStoreReturnsDefaults(t *testing.T) {
	settings, err := NewSettingsService(nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("page.size", "letter")
	_ = store.Set("page.margin", 0.0)
	_ = store.Set("grid.columns", 3)
	_ = store.Set("grid.cell_gap", int64(4))
	_ = store.Set("image.compress", false)
	_ = store.Set("image.quality", 60)
	_ = store.Set("export.author", "J. Smith")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.PageSizeLetter, settings.Page.Size)
	assert.Zero(t, settings.Page.Margin)
	assert.Equal(t, 3, settings.Grid.Columns)
	assert.InDelta(t, 4.0, settings.Grid.CellGap, 1e-9)
	assert.False(t, settings.Image.Compress)
	assert.Equal(t, 60, settings.Image.Quality)
	assert.Equal(t, "J. Smith", settings.Export.Author)
}

func TestSettingsService_Get_InvalidPageSizeReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("page.size", "tabloid")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.PageSizeA4, settings.Page.Size)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Page.Size = domain.PageSizeA5
	settings.Grid.Columns = 1
	settings.Export.Directory = "/tmp/out"

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *retrieved)
	assert.Equal(t, "a5", store.GetString("page.size"))
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Grid.Columns = 0

	err := service.Save(&settings)

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	_, stored := store.Get("grid.columns")
	assert.False(t, stored)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"page.size", "Letter", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.PageSizeLetter, s.Page.Size)
		}},
		{"page.margin", "12.5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 12.5, s.Page.Margin, 1e-9)
		}},
		{"page.footer_height", "0", func(t *testing.T, s *domain.AppSettings) {
			assert.Zero(t, s.Page.FooterHeight)
		}},
		{"grid.columns", "3", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 3, s.Grid.Columns)
		}},
		{"grid.cell_gap", "5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 5.0, s.Grid.CellGap, 1e-9)
		}},
		{"grid.row_gap", "6", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 6.0, s.Grid.RowGap, 1e-9)
		}},
		{"grid.header_height", "8", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 8.0, s.Grid.HeaderHeight, 1e-9)
		}},
		{"image.compress", "false", func(t *testing.T, s *domain.AppSettings) {
			assert.False(t, s.Image.Compress)
		}},
		{"image.max_dimension", "800", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 800, s.Image.MaxDimension)
		}},
		{"image.quality", " 55 ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 55, s.Image.Quality)
		}},
		{"export.directory", "/tmp/reports", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/tmp/reports", s.Export.Directory)
		}},
		{"export.author", "A. Jones", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "A. Jones", s.Export.Author)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"unknown key", "page.colour", "red", domain.ErrInvalidInput},
		{"unknown page size", "page.size", "tabloid", domain.ErrInvalidInput},
		{"not a number", "page.margin", "wide", domain.ErrInvalidInput},
		{"NaN margin", "page.margin", "NaN", domain.ErrInvalidInput},
		{"infinite gap", "grid.cell_gap", "Inf", domain.ErrInvalidInput},
		{"negative infinite header", "grid.header_height", "-Inf", domain.ErrInvalidInput},
		{"not an integer", "grid.columns", "2.5", domain.ErrInvalidInput},
		{"not a bool", "image.compress", "maybe", domain.ErrInvalidInput},
		{"zero columns", "grid.columns", "0", domain.ErrInvalidConfig},
		{"negative gap", "grid.cell_gap", "-1", domain.ErrInvalidConfig},
		{"quality too high", "image.quality", "101", domain.ErrInvalidConfig},
		{"dimension too small", "image.max_dimension", "10", domain.ErrInvalidConfig},
		{"margin leaves no room", "page.margin", "200", domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, tt.wantErr)
			_, stored := store.Get(tt.key)
			assert.False(t, stored, "invalid value must not be persisted")
		})
	}
}

func TestSettingsService_Reset(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Set("grid.columns", "4"))

	require.NoError(t, service.Reset("grid.columns"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Grid.Columns, settings.Grid.Columns)
}

func TestSettingsService_Reset_UnknownKey(t *testing.T) {
	err := NewSettingsService(memory.NewConfigStore()).Reset("nope")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)
	settings := domain.DefaultAppSettings()

	assert.ErrorIs(t, service.Save(&settings), domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Set("grid.columns", "3"), domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Reset("grid.columns"), domain.ErrNotImplemented)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Validate())

	// Written behind the service's back, as a hand-edited file would be.
	_ = store.Set("image.quality", 500)

	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidConfig)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	require.Len(t, keys, 12)
	assert.Equal(t, "page.size", keys[0])
	assert.Contains(t, keys, "image.quality")

	keys[0] = "mutated"
	assert.Equal(t, "page.size", service.Keys()[0])
}

func TestSettingString(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Page.Margin = 12.5

	assert.Equal(t, "a4", SettingString(&settings, "page.size"))
	assert.Equal(t, "12.5", SettingString(&settings, "page.margin"))
	assert.Equal(t, "2", SettingString(&settings, "grid.columns"))
	assert.Equal(t, "true", SettingString(&settings, "image.compress"))
	assert.Equal(t, "", SettingString(&settings, "export.author"))
	assert.Equal(t, "", SettingString(&settings, "unknown"))
}

func TestSettingsService_Set_RowMustFitPage(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, service.Set("grid.columns", "1"))

	// A5 with one column: cell is 118 x 88.5 mm; a 100 mm header no longer fits.
	require.NoError(t, service.Set("page.size", "a5"))
	err := service.Set("grid.header_height", "100")

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSettingsService_Override(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Set("grid.columns", "3"))

	require.NoError(t, service.Override("grid.columns", "1"))
	require.NoError(t, service.Override("image.quality", " 55 "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, settings.Grid.Columns)
	assert.Equal(t, 55, settings.Image.Quality)

	assert.Equal(t, 3, store.GetInt("grid.columns"))
	_, ok := store.Get("image.quality")
	assert.False(t, ok)
}

func TestSettingsService_Override_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	require.NoError(t, service.Override("page.size", "a5"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.PageSizeA5, settings.Page.Size)
}

func TestSettingsService_Override_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Override("grid.columns", "0"), domain.ErrInvalidConfig)
	assert.Error(t, service.Override("nope", "1"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_List(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, service.Set("grid.columns", "3"))

	list, err := service.List()

	require.NoError(t, err)
	require.Len(t, list, len(service.Keys()))
	assert.Equal(t, "page.size", list[0].Key)
	assert.Equal(t, "a4", list[0].Value)
	assert.True(t, list[0].IsDefault())

	for _, s := range list {
		if s.Key == "grid.columns" {
			assert.Equal(t, "3", s.Value)
			assert.Equal(t, "2", s.Default)
			assert.False(t, s.IsDefault())
		}
	}
}
