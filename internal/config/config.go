// Package config, sqlforge komut satırı aracının bağlantı ayarlarını
// .sqlforge.yaml dosyasından, SQLFORGE_ önekli ortam değişkenlerinden ve
// .env / .env.local dosyalarından toplar.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/biyonik/go-sqlforge"
	"github.com/biyonik/go-sqlforge/dialect"
)

// EnvPrefix, ortam değişkenlerinin ortak önekidir (SQLFORGE_HOST gibi).
const EnvPrefix = "SQLFORGE"

// ConfigName, aranan yapılandırma dosyasının uzantısız adıdır.
const ConfigName = ".sqlforge"

// Anahtarlar hem YAML dosyasında hem ortam değişkenlerinde aynıdır.
const (
	KeyHost          = "host"
	KeyPort          = "port"
	KeyDatabase      = "database"
	KeyUsername      = "username"
	KeyPassword      = "password"
	KeyCharset       = "charset"
	KeyCollation     = "collation"
	KeyPrefix        = "prefix"
	KeyMaxOpenConns  = "max_open_conns"
	KeyMaxIdleConns  = "max_idle_conns"
	KeyConnMaxLife   = "conn_max_life"
	KeyConnMaxIdle   = "conn_max_idle"
	KeyTLS           = "tls"
	KeyTimeout       = "timeout"
	KeyDebug         = "debug"
	KeyDSN           = "dsn"
	KeyServerVersion = "server_version"
)

var keys = []string{
	KeyHost, KeyPort, KeyDatabase, KeyUsername, KeyPassword, KeyCharset,
	KeyCollation, KeyPrefix, KeyMaxOpenConns, KeyMaxIdleConns, KeyConnMaxLife,
	KeyConnMaxIdle, KeyTLS, KeyTimeout, KeyDebug, KeyDSN, KeyServerVersion,
}

// ErrInvalidConfig, okunan ayarlar tutarsız olduğunda döner.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// AppFs, Loader bir dosya sistemi verilmeden kullanıldığında okunan sistemdir.
var AppFs = afero.NewOsFs()

// Settings, yüklenmiş ve doğrulanmış ayarlardır.
type Settings struct {
	DB            *sqlforge.Config
	DSN           string
	Debug         bool
	ServerVersion string
	// ConfigFile, okunan yapılandırma dosyası; bulunamadıysa boş.
	ConfigFile string
}

// Loader ayarları okur. Sıfır değeri kullanılabilir: işletim sisteminin dosya
// sistemi ve kullanıcının ev dizini kullanılır.
type Loader struct {
	Fs afero.Fs
	// Home boşsa go-homedir ile bulunur.
	Home string
	// ConfigFile verilirse arama yolları yerine yalnızca bu dosya okunur.
	ConfigFile string
	// Dir, .env dosyalarının ve yerel .sqlforge.yaml'ın arandığı dizin.
	Dir string
}

// Load, öncelik sırasıyla şu kaynakları birleştirir: .env.local, gerçek ortam
// değişkenleri, .env, yapılandırma dosyası ve varsayılanlar.
func (l *Loader) Load() (*Settings, error) {
	fs := l.Fs
	if fs == nil {
		fs = AppFs
	}
	dir := l.Dir
	if dir == "" {
		dir = "."
	}

	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if l.ConfigFile != "" {
		v.SetConfigFile(l.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", l.ConfigFile, err)
		}
	} else {
		home := l.Home
		if home == "" {
			h, err := homedir.Dir()
			if err != nil {
				return nil, fmt.Errorf("config: home directory: %w", err)
			}
			home = h
		}
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "sqlforge"))

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read config: %w", err)
			}
		}
	}

	if err := applyDotenv(fs, v, filepath.Join(dir, ".env"), false); err != nil {
		return nil, err
	}
	if err := applyDotenv(fs, v, filepath.Join(dir, ".env.local"), true); err != nil {
		return nil, err
	}

	return settingsFrom(v)
}

func setDefaults(v *viper.Viper) {
	d := sqlforge.DefaultConfig()
	v.SetDefault(KeyHost, d.Host)
	v.SetDefault(KeyPort, d.Port)
	v.SetDefault(KeyCharset, d.Charset)
	v.SetDefault(KeyCollation, d.Collation)
	v.SetDefault(KeyMaxOpenConns, d.MaxOpenConns)
	v.SetDefault(KeyMaxIdleConns, d.MaxIdleConns)
	v.SetDefault(KeyConnMaxLife, d.ConnMaxLife)
	v.SetDefault(KeyConnMaxIdle, d.ConnMaxIdle)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyTLS, false)
	v.SetDefault(KeyDebug, false)
}

// applyDotenv, SQLFORGE_ önekli anahtarları viper'a aktarır. override false
// ise gerçek ortamda tanımlı olan anahtarlar atlanır.
func applyDotenv(fs afero.Fs, v *viper.Viper, path string, override bool) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	for name, value := range env {
		key, ok := strings.CutPrefix(name, EnvPrefix+"_")
		if !ok {
			continue
		}
		if !override {
			if _, set := os.LookupEnv(name); set {
				continue
			}
		}
		v.Set(strings.ToLower(key), value)
	}
	return nil
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	cfg := &sqlforge.Config{
		Host:         v.GetString(KeyHost),
		Port:         v.GetInt(KeyPort),
		Database:     v.GetString(KeyDatabase),
		Username:     v.GetString(KeyUsername),
		Password:     v.GetString(KeyPassword),
		Charset:      v.GetString(KeyCharset),
		Collation:    v.GetString(KeyCollation),
		Prefix:       v.GetString(KeyPrefix),
		MaxOpenConns: v.GetInt(KeyMaxOpenConns),
		MaxIdleConns: v.GetInt(KeyMaxIdleConns),
		ConnMaxLife:  v.GetDuration(KeyConnMaxLife),
		ConnMaxIdle:  v.GetDuration(KeyConnMaxIdle),
		TLS:          v.GetBool(KeyTLS),
		Timeout:      v.GetDuration(KeyTimeout),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, cfg.Port)
	}

	s := &Settings{
		DB:            cfg,
		DSN:           v.GetString(KeyDSN),
		Debug:         v.GetBool(KeyDebug),
		ServerVersion: v.GetString(KeyServerVersion),
		ConfigFile:    v.ConfigFileUsed(),
	}

	if s.DSN != "" {
		if _, err := mysql.ParseDSN(s.DSN); err != nil {
			return nil, fmt.Errorf("%w: dsn: %v", ErrInvalidConfig, err)
		}
	}
	if s.ServerVersion != "" {
		if err := dialect.MySQL().SetServerVersion(s.ServerVersion); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return s, nil
}

// Options, ayarlardan türeyen sqlforge seçeneklerini döndürür. logger nil
// ise sorgular loglanmaz.
func (s *Settings) Options(logger *slog.Logger) []sqlforge.Option {
	opts := []sqlforge.Option{
		sqlforge.WithDebug(s.Debug),
		sqlforge.WithTablePrefix(s.DB.Prefix),
		sqlforge.WithGrammar(dialect.MySQL(dialect.WithServerVersion(s.ServerVersion))),
	}
	if logger != nil {
		opts = append(opts, sqlforge.WithLogger(sqlforge.NewSlogLogger(logger)))
	}
	return opts
}

// Connect, DSN verilmişse onunla, verilmemişse alan bazlı ayarlarla bağlanır.
func (s *Settings) Connect(ctx context.Context, logger *slog.Logger) (*sqlforge.DB, error) {
	if s.DSN != "" {
		return sqlforge.Connect(ctx, s.DSN, s.Options(logger)...)
	}
	return sqlforge.ConnectWithConfig(ctx, s.DB, s.Options(logger)...)
}

// WriteDefault, varsayılan ayarları path'e YAML olarak yazar. Parola
// dosyaya yazılmaz. Dosya varsa üzerine yazılmaz.
func WriteDefault(fs afero.Fs, path string) error {
	if fs == nil {
		fs = AppFs
	}
	if exists, err := afero.Exists(fs, path); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("config: %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	v := viper.New()
	v.SetFs(fs)
	d := sqlforge.DefaultConfig()
	v.Set(KeyHost, d.Host)
	v.Set(KeyPort, d.Port)
	v.Set(KeyDatabase, "")
	v.Set(KeyUsername, "")
	v.Set(KeyCharset, d.Charset)
	v.Set(KeyCollation, d.Collation)
	v.Set(KeyPrefix, "")
	v.Set(KeyMaxOpenConns, d.MaxOpenConns)
	v.Set(KeyMaxIdleConns, d.MaxIdleConns)
	v.Set(KeyConnMaxLife, d.ConnMaxLife.String())
	v.Set(KeyConnMaxIdle, d.ConnMaxIdle.String())
	v.Set(KeyTimeout, d.Timeout.String())
	v.SetConfigType("yaml")
	return v.WriteConfigAs(path)
}

// Keys, tanınan tüm anahtarları döndürür.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
