package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui"
)

func TestTUICmd_Metadata(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.NotEmpty(t, tuiCmd.Short)
	assert.NotNil(t, tuiCmd.RunE)
}

func TestNewTUIApp(t *testing.T) {
	SetServices(&Services{
		Report:   newMockReportService(),
		Export:   &mockExportService{},
		Settings: newMockSettingsService(),
	})
	defer SetServices(nil)

	app, err := newTUIApp()

	require.NoError(t, err)
	assert.NotNil(t, app)
}

func TestNewTUIApp_MissingServices(t *testing.T) {
	SetServices(&Services{Export: &mockExportService{}})
	defer SetServices(nil)

	app, err := newTUIApp()

	assert.Nil(t, app)
	assert.ErrorIs(t, err, tui.ErrMissingReportService)
}

func TestTUICmd_MissingServices(t *testing.T) {
	_, err := runCommand(t, nil, "", "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
