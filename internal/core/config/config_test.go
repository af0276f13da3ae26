package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_DefaultsWhenFileMissing(t *testing.T) {
	c, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "db", c.Directory.Source)
	assert.Equal(t, "http://localhost:5001/api", c.Directory.APIBaseURL)
	assert.Equal(t, 5, c.Directory.UndoWindowSec)
	assert.Equal(t, 5001, c.App.HTTP.Port)
}

func TestRead_FileAndEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  http:
    port: 8080
db:
  driver: postgres
  dsn: "host=db user=u dbname=d"
directory:
  source: url
  data_url: "http://cdn.local/listings.json"
  undo_window_sec: 3
redis:
  addr: "127.0.0.1:6379"
`
	require.NoError(t, os.WriteFile(p, []byte(yaml), 0o600))
	t.Setenv("APP_DIRECTORY_API_BASE_URL", "https://api.emptycup.test/api")

	c, err := Read(p)
	require.NoError(t, err)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "url", c.Directory.Source)
	assert.Equal(t, "http://cdn.local/listings.json", c.Directory.DataURL)
	assert.Equal(t, 3, c.Directory.UndoWindowSec)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
	assert.Equal(t, "https://api.emptycup.test/api", c.Directory.APIBaseURL)
}

func TestRead_BrokenFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("app: [unclosed"), 0o600))

	_, err := Read(p)
	assert.Error(t, err)
}
