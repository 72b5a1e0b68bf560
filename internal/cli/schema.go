package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-sqlforge/internal/tablefile"
	"github.com/biyonik/go-sqlforge/internal/watch"
)

// ErrAborted, kullanıcı onay vermediğinde döner.
var ErrAborted = errors.New("aborted")

func (a *App) NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Compile, describe and apply table files",
	}
	cmd.AddCommand(a.newSchemaCompileCommand(), a.newSchemaDescribeCommand(), a.newSchemaApplyCommand())
	return cmd
}

func (a *App) newSchemaCompileCommand() *cobra.Command {
	var (
		prefix   string
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Print the CREATE or ALTER statement for a table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefixSet := cmd.Flags().Changed("prefix")
			compile := func() error {
				sql, err := a.compileFile(args[0], prefix, prefixSet)
				if err != nil {
					return err
				}
				a.printer.SQL(sql, nil)
				return nil
			}
			if !watching {
				return compile()
			}
			return a.watchFile(cmd.Context(), args[0], compile)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "table prefix (overrides config)")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "recompile whenever the file changes")
	return cmd
}

func (a *App) newSchemaDescribeCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Render a table file as a readable document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tablefile.Load(a.Fs, args[0])
			if err != nil {
				return err
			}
			sql, err := a.compileFile(args[0], prefix, cmd.Flags().Changed("prefix"))
			if err != nil {
				return err
			}
			return a.printer.Markdown(f.Markdown(sql))
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "table prefix (overrides config)")
	return cmd
}

func (a *App) newSchemaApplyCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Run the statement for a table file against the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := tablefile.Load(a.Fs, args[0])
			if err != nil {
				return err
			}

			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			stmt, err := f.Command(db.Query())
			if err != nil {
				return err
			}
			sql, err := stmt.Compile()
			if err != nil {
				return err
			}
			a.printer.SQL(sql, nil)

			if err := a.confirm(yes, fmt.Sprintf("Apply to table %q?", f.Table)); err != nil {
				return err
			}
			if _, err := stmt.Exec(ctx); err != nil {
				return err
			}
			a.printer.Success("%s applied", f.Table)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *App) compileFile(path, prefix string, prefixSet bool) (string, error) {
	f, err := tablefile.Load(a.Fs, path)
	if err != nil {
		return "", err
	}
	qb, err := a.offline(prefix, prefixSet)
	if err != nil {
		return "", err
	}
	stmt, err := f.Command(qb)
	if err != nil {
		return "", err
	}
	return stmt.Compile()
}

func (a *App) watchFile(ctx context.Context, path string, fn func() error) error {
	w, err := watch.New(path, func() error {
		if err := fn(); err != nil {
			a.printer.Error("%v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.OnError = func(err error) { a.printer.Error("%v", err) }
	a.printer.Info("watching %s", w.File())
	return w.Run(ctx)
}

// confirm, yes verilmemişse kullanıcıdan onay ister.
func (a *App) confirm(yes bool, message string) error {
	if yes {
		return nil
	}
	ok, err := a.Confirmer.Confirm(message, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}
