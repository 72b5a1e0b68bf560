// Package cli, sqlforge komut satırı aracının cobra komutlarını tanımlar.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/biyonik/go-sqlforge"
	"github.com/biyonik/go-sqlforge/internal/config"
	"github.com/biyonik/go-sqlforge/internal/ui"
)

// ConnectFunc, ayarlardan veritabanı bağlantısı açar.
type ConnectFunc func(ctx context.Context, s *config.Settings, logger *slog.Logger) (*sqlforge.DB, error)

// App, komutların paylaştığı bağımlılıklardır. Alanlar test için
// değiştirilebilir; sıfır değerler NewApp'teki varsayılanlarla doldurulur.
type App struct {
	Fs        afero.Fs
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	Confirmer ui.Confirmer
	Connect   ConnectFunc

	configFile string
	debug      bool
	noColor    bool

	printer *ui.Printer
	logger  *slog.Logger
}

// NewApp, işletim sisteminin standart akışlarını kullanan bir App döndürür.
func NewApp() *App {
	return &App{
		Fs:  afero.NewOsFs(),
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// Execute, kök komutu args ile çalıştırır.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand, tüm alt komutları içeren kök komutu kurar.
func (a *App) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sqlforge",
		Short: "MySQL query and schema builder",
		Long: "sqlforge compiles table definitions into MySQL DDL, applies them and " +
			"inspects a server through SHOW commands.",
		Version:       sqlforge.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup()
			return nil
		},
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default .sqlforge.yaml in ., $HOME or $HOME/.config/sqlforge)")
	flags.BoolVar(&a.debug, "debug", false, "log every executed statement")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.NewInitCommand(),
		a.NewSchemaCommand(),
		a.NewShowCommand(),
		a.NewRowsCommand(),
		a.NewDropCommand(),
		a.NewVersionCommand(),
	)
	return root
}

func (a *App) setup() {
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	if a.Confirmer == nil {
		a.Confirmer = ui.SurveyConfirmer{}
	}
	if a.Connect == nil {
		a.Connect = func(ctx context.Context, s *config.Settings, logger *slog.Logger) (*sqlforge.DB, error) {
			return s.Connect(ctx, logger)
		}
	}
	a.printer = ui.NewPrinter(a.Out, a.Err, a.noColor)

	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.Err, &slog.HandlerOptions{Level: level}))
}

// settings, --config ve --debug bayraklarını hesaba katarak ayarları yükler.
func (a *App) settings() (*config.Settings, error) {
	l := &config.Loader{Fs: a.Fs, ConfigFile: a.configFile}
	s, err := l.Load()
	if err != nil {
		return nil, err
	}
	if a.debug {
		s.Debug = true
	}
	return s, nil
}

// connect, ayarları yükler, bağlanır ve sunucu sürümünü okur. Sürüm
// ayarlarda sabitlenmişse sorgulanmaz.
func (a *App) connect(ctx context.Context) (*sqlforge.DB, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}
	db, err := a.Connect(ctx, s, a.logger)
	if err != nil {
		return nil, err
	}
	if s.ServerVersion == "" {
		if _, err := db.DetectServerVersion(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// offline, bağlantı açmadan derleme yapan bir builder döndürür. Prefix ve
// sunucu sürümü ayarlardan gelir.
func (a *App) offline(prefix string, prefixSet bool) (*sqlforge.QueryBuilder, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}
	qb := sqlforge.New(s.Options(nil)...)
	if prefixSet {
		qb.SetPrefix(prefix)
	}
	return qb, nil
}
