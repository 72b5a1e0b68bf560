package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-sqlforge"
)

func (a *App) NewShowCommand() *cobra.Command {
	var like string

	cmd := &cobra.Command{
		Use:       "show tables|databases|status|columns TABLE|create TABLE",
		Short:     "Run a SHOW statement and print the result",
		ValidArgs: []string{"tables", "databases", "status", "columns", "create"},
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			show, err := buildShow(db.Query(), args, like)
			if err != nil {
				return err
			}
			if a.debug {
				sql, err := show.Compile()
				if err != nil {
					return err
				}
				a.printer.SQL(sql, nil)
			}

			rows, err := show.Rows(ctx)
			if err != nil {
				return err
			}
			return a.printer.Rows(rows)
		},
	}

	cmd.Flags().StringVar(&like, "like", "", "LIKE pattern (tables, databases, status, columns)")
	return cmd
}

// buildShow, argümanları ShowCommand'a çevirir.
func buildShow(qb *sqlforge.QueryBuilder, args []string, like string) (*sqlforge.ShowCommand, error) {
	kind := strings.ToLower(args[0])
	needsTable := kind == "columns" || kind == "create"
	if needsTable && len(args) != 2 {
		return nil, fmt.Errorf("show %s needs a table name", kind)
	}
	if !needsTable && len(args) != 1 {
		return nil, fmt.Errorf("show %s takes no table name", kind)
	}

	show := qb.Show()
	switch kind {
	case "tables":
		show.Tables()
	case "databases":
		show.Databases()
	case "status":
		show.TableStatus()
	case "columns":
		show.Columns(args[1])
	case "create":
		show.CreateTable(args[1])
	default:
		return nil, fmt.Errorf("unknown show target %q", args[0])
	}
	if like != "" {
		show.Like(like)
	}
	return show, nil
}
