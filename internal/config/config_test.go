package config

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-sqlforge"
)

// clearEnv, testin boyunca SQLFORGE_ değişkenlerini boşaltır ve test sonunda
// eski değerlerini geri yükler.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		name := EnvPrefix + "_" + strings.ToUpper(k)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return &Loader{Fs: fs, Home: "/home/dev", Dir: "/work"}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := newLoader(t, nil).Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", s.DB.Host)
	assert.Equal(t, 3306, s.DB.Port)
	assert.Equal(t, "utf8mb4", s.DB.Charset)
	assert.Equal(t, "utf8mb4_unicode_ci", s.DB.Collation)
	assert.Equal(t, 25, s.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, s.DB.ConnMaxLife)
	assert.Equal(t, 10*time.Second, s.DB.Timeout)
	assert.False(t, s.Debug)
	assert.Empty(t, s.DSN)
	assert.Empty(t, s.ConfigFile)
}

func TestLoad_ConfigFileSearchPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"working directory", "/work/.sqlforge.yaml"},
		{"home", "/home/dev/.sqlforge.yaml"},
		{"xdg config", "/home/dev/.config/sqlforge/.sqlforge.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			l := newLoader(t, map[string]string{
				tt.path: "host: db.internal\nport: 3307\ndatabase: app\nprefix: app_\nconn_max_life: 90s\ndebug: true\n",
			})

			s, err := l.Load()
			require.NoError(t, err)
			assert.Equal(t, "db.internal", s.DB.Host)
			assert.Equal(t, 3307, s.DB.Port)
			assert.Equal(t, "app", s.DB.Database)
			assert.Equal(t, "app_", s.DB.Prefix)
			assert.Equal(t, 90*time.Second, s.DB.ConnMaxLife)
			assert.True(t, s.Debug)
			assert.NotEmpty(t, s.ConfigFile)
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLFORGE_DATABASE", "from_env")
	t.Setenv("SQLFORGE_USERNAME", "env_user")

	l := newLoader(t, map[string]string{
		"/work/.sqlforge.yaml": "host: file-host\ndatabase: from_file\nusername: file_user\nport: 3307\n",
		"/work/.env":           "SQLFORGE_HOST=dotenv-host\nSQLFORGE_DATABASE=from_dotenv\nOTHER=ignored\n",
		"/work/.env.local":     "SQLFORGE_USERNAME=local_user\n",
	})

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-host", s.DB.Host, ".env beats the config file")
	assert.Equal(t, "from_env", s.DB.Database, "real env beats .env")
	assert.Equal(t, "local_user", s.DB.Username, ".env.local beats real env")
	assert.Equal(t, 3307, s.DB.Port)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	clearEnv(t)
	l := newLoader(t, map[string]string{"/etc/sqlforge.yml": "server_version: 5.7.40-log\n"})
	l.ConfigFile = "/etc/sqlforge.yml"

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "5.7.40-log", s.ServerVersion)

	l.ConfigFile = "/etc/missing.yml"
	_, err = l.Load()
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port", "port: 70000\n"},
		{"dsn", "dsn: \"not a dsn\"\n"},
		{"server version", "server_version: banana\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := newLoader(t, map[string]string{"/work/.sqlforge.yaml": tt.yaml}).Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSettings_Options(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLFORGE_PREFIX", "p_")
	t.Setenv("SQLFORGE_SERVER_VERSION", "5.7.40")

	s, err := newLoader(t, nil).Load()
	require.NoError(t, err)

	db := sqlforge.NewDB(nil, s.Options(nil)...)
	assert.Equal(t, "p_", db.TablePrefix())
	assert.False(t, db.IsDebug())

	sql, err := db.Query().Select().From("users").Compile()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `p_users`;", sql)

	_, err = db.Query().Alter("users").RenameColumn("a", "b").Compile()
	assert.Error(t, err, "RENAME COLUMN needs 8.0")
}

func TestSettings_ConnectFailsWithoutServer(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLFORGE_PORT", "1")
	t.Setenv("SQLFORGE_TIMEOUT", "50ms")

	s, err := newLoader(t, nil).Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = s.Connect(ctx, nil)
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteDefault(fs, "/work/.sqlforge.yaml"))

	data, err := afero.ReadFile(fs, "/work/.sqlforge.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "host: localhost")
	assert.NotContains(t, string(data), "password")

	s, err := (&Loader{Fs: fs, Home: "/home/dev", Dir: "/work"}).Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, s.DB.ConnMaxIdle)

	assert.Error(t, WriteDefault(fs, "/work/.sqlforge.yaml"), "existing file is kept")
}

func TestKeys(t *testing.T) {
	k := Keys()
	assert.Contains(t, k, KeyDSN)
	k[0] = "changed"
	assert.Equal(t, KeyHost, Keys()[0])
}
