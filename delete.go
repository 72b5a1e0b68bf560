package sqlforge

import "github.com/biyonik/go-sqlforge/dialect"

// DeleteCommand, DELETE ifadesini kurar.
//
//	_, err := db.Query().Delete().From("sessions").
//	    Where("expires_at", "<", time.Now()).
//	    OrderBy("id").
//	    Limit(500).
//	    Exec(ctx)
type DeleteCommand struct {
	command
	conditions[*DeleteCommand]

	table  string
	orders []dialect.OrderClause
	limit  *int
}

func newDeleteCommand(qb *QueryBuilder) *DeleteCommand {
	c := &DeleteCommand{}
	c.self = c
	c.command = newCommand(qb, "delete", func() (string, []any, error) {
		return c.qb.grammar.CompileDelete(c)
	})
	return c
}

// From, kayıtların silineceği tabloyu ayarlar.
func (c *DeleteCommand) From(table string) *DeleteCommand {
	c.table = table
	return c
}

func (c *DeleteCommand) OrderBy(args ...string) *DeleteCommand {
	orders, err := parseOrderBy(args)
	c.addErr(err)
	c.orders = append(c.orders, orders...)
	return c
}

func (c *DeleteCommand) Limit(n int) *DeleteCommand {
	c.limit = boundArg(&c.command, "limit", n)
	return c
}

func (c *DeleteCommand) GetTable() string                 { return c.qb.table(c.table) }
func (c *DeleteCommand) GetOrders() []dialect.OrderClause { return c.orders }
func (c *DeleteCommand) GetLimit() *int                   { return c.limit }
