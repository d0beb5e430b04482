package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/bereal/internal/client/config"
	"github.com/dmitrijs2005/bereal/internal/client/notify"
	"github.com/dmitrijs2005/bereal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.ServerURL = "http://127.0.0.1:0"
	return cfg
}

func TestNewApp_WiresLocalState(t *testing.T) {
	cfg := testConfig(t)

	a, err := NewApp(context.Background(), cfg, logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(a.close)

	_, err = os.Stat(filepath.Join(cfg.DataDir, dbFileName))
	require.NoError(t, err)

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "not logged in", a.status())
	assert.Equal(t, notify.StateUnrequested, a.reminders.State())
	assert.NotNil(t, a.deliverer)
}

func TestNewApp_UnknownFileStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.FileStore = "ftp"

	_, err := NewApp(context.Background(), cfg, logging.Nop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown file store "ftp"`)
}
