package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-sqlforge"
	"github.com/biyonik/go-sqlforge/dialect"
	"github.com/biyonik/go-sqlforge/internal/config"
)

func (a *App) NewVersionCommand() *cobra.Command {
	var server bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := [][2]string{
				{"sqlforge", sqlforge.Version},
				{"go", runtime.Version()},
				{"os/arch", runtime.GOOS + "/" + runtime.GOARCH},
			}

			if server {
				db, err := a.connect(cmd.Context())
				if err != nil {
					return err
				}
				defer db.Close()

				v := "unknown"
				if g, ok := db.Grammar().(*dialect.MySQLGrammar); ok && g.ServerVersion() != "" {
					v = g.ServerVersion()
				}
				pairs = append(pairs, [2]string{"server", v}, [2]string{"dialect", db.Grammar().Name()})
			}

			a.printer.Title("sqlforge")
			a.printer.KeyValue(pairs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&server, "server", false, "also connect and report the server version")
	return cmd
}

func (a *App) NewInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ConfigName + ".yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(a.Fs, path); err != nil {
				return err
			}
			a.printer.Success("wrote %s", path)
			a.printer.Info("set the password with %s_PASSWORD or in .env", config.EnvPrefix)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", config.ConfigName+".yaml", "where to write the config file")
	return cmd
}
