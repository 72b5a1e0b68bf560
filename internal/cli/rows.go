package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-sqlforge"
)

// whereOperators sırayla denenir: kelime operatörleri önce, sonra uzundan
// kısaya semboller ("<=" "<"dan önce).
var whereOperators = []string{" not like ", " like ", "<=>", "!=", "<>", ">=", "<=", "=", ">", "<"}

func (a *App) NewRowsCommand() *cobra.Command {
	var (
		columns []string
		wheres  []string
		orders  []string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "rows TABLE",
		Short: "Print one page of rows from a table",
		Example: `  sqlforge rows users --columns id,name --where "status=active" --order created_at:desc
  sqlforge rows posts --where "views>=100" --page 2 --per-page 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			sel, err := buildRows(db.Query(), args[0], columns, wheres, orders)
			if err != nil {
				return err
			}
			if a.debug {
				sql, err := sel.Compile()
				if err != nil {
					return err
				}
				a.printer.SQL(sql, sel.Parameters())
			}

			var rows []sqlforge.Row
			p, err := sel.Paginate(ctx, page, perPage, &rows)
			if err != nil {
				return err
			}
			if err := a.printer.Rows(rows); err != nil {
				return err
			}
			a.printer.Info("page %d of %d (%d rows)", p.Page, p.TotalPages, p.Total)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "columns to select (default *)")
	cmd.Flags().StringArrayVar(&wheres, "where", nil, `condition "column<op>value", repeatable; ops: = != <> > >= < <= <=> like "not like"`)
	cmd.Flags().StringArrayVar(&orders, "order", nil, "order column, optionally column:desc")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 15, "rows per page")
	return cmd
}

// buildRows, bayrakları bir SelectCommand'a çevirir. Değerler her zaman
// Literal olarak bağlanır; komut satırından gelen metin SQL'e girmez.
func buildRows(qb *sqlforge.QueryBuilder, table string, columns, wheres, orders []string) (*sqlforge.SelectCommand, error) {
	sel := qb.Select(columns...).From(table)

	for _, w := range wheres {
		column, op, value, err := parseWhere(w)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(value, "null") && (op == "=" || op == "!=" || op == "<>") {
			if op == "=" {
				sel.WhereNull(column)
			} else {
				sel.WhereNotNull(column)
			}
			continue
		}
		sel.Where(column, op, sqlforge.Literal(value))
	}

	for _, o := range orders {
		column, dir, _ := strings.Cut(o, ":")
		if dir == "" {
			sel.OrderBy(column)
		} else {
			sel.OrderBy(column, dir)
		}
	}
	return sel, nil
}

func parseWhere(expr string) (column, op, value string, err error) {
	lower := strings.ToLower(expr)
	for _, candidate := range whereOperators {
		if i := strings.Index(lower, candidate); i > 0 {
			column = strings.TrimSpace(expr[:i])
			value = strings.TrimSpace(expr[i+len(candidate):])
			op = strings.ToUpper(strings.TrimSpace(candidate))
			return column, op, value, nil
		}
	}
	return "", "", "", fmt.Errorf("invalid --where %q: expected column<op>value", expr)
}
