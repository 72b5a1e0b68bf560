package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) NewDropCommand() *cobra.Command {
	var (
		database bool
		ifExists bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "drop TABLE... | drop --database NAME",
		Short: "Drop tables or a database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if database && len(args) != 1 {
				return fmt.Errorf("drop --database takes exactly one name")
			}
			ctx := cmd.Context()

			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			drop := db.Query().Drop()
			what := "tables " + strings.Join(args, ", ")
			if database {
				drop.Database(args[0])
				what = "database " + args[0]
			} else {
				drop.Table(args...)
			}
			if ifExists {
				drop.IfExists()
			}

			sql, err := drop.Compile()
			if err != nil {
				return err
			}
			a.printer.SQL(sql, nil)
			a.printer.Warning("this permanently removes %s", what)

			if err := a.confirm(yes, "Drop "+what+"?"); err != nil {
				return err
			}
			if _, err := drop.Exec(ctx); err != nil {
				return err
			}
			a.printer.Success("dropped %s", what)
			return nil
		},
	}

	cmd.Flags().BoolVar(&database, "database", false, "drop a database instead of tables")
	cmd.Flags().BoolVar(&ifExists, "if-exists", false, "add IF EXISTS")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
