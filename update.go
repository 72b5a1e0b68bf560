package sqlforge

import (
	"sort"

	"github.com/biyonik/go-sqlforge/dialect"
)

// UpdateCommand, UPDATE ifadesini kurar. Parametre sırası önce SET
// değerleri, sonra WHERE değerleridir.
//
//	_, err := db.Query().Update().Table("accounts").
//	    Set("balance", 0).
//	    Set("updated_at", "NOW()").
//	    Where("id", "=", 7).
//	    Exec(ctx)
//	// UPDATE `accounts` SET `balance` = ?, `updated_at` = NOW() WHERE `id` = ?;
type UpdateCommand struct {
	command
	conditions[*UpdateCommand]

	table       string
	assignments []dialect.Assignment
	orders      []dialect.OrderClause
	limit       *int
}

func newUpdateCommand(qb *QueryBuilder) *UpdateCommand {
	c := &UpdateCommand{}
	c.self = c
	c.command = newCommand(qb, "update", func() (string, []any, error) {
		return c.qb.grammar.CompileUpdate(c)
	})
	return c
}

// Table, güncellenecek tabloyu ayarlar.
func (c *UpdateCommand) Table(table string) *UpdateCommand {
	c.table = table
	return c
}

// Values, map'teki kolonları alfabetik sırayla SET listesine ekler.
func (c *UpdateCommand) Values(values map[string]any) *UpdateCommand {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.assignments = setAssignment(c.assignments, k, values[k])
	}
	return c
}

// Set, tek bir "kolon = değer" ataması ekler. Atamalar çağrı sırasıyla yazılır.
func (c *UpdateCommand) Set(column string, value any) *UpdateCommand {
	c.assignments = setAssignment(c.assignments, column, value)
	return c
}

// OrderBy, Select.OrderBy ile aynı argüman biçimini kabul eder.
func (c *UpdateCommand) OrderBy(args ...string) *UpdateCommand {
	orders, err := parseOrderBy(args)
	c.addErr(err)
	c.orders = append(c.orders, orders...)
	return c
}

func (c *UpdateCommand) Limit(n int) *UpdateCommand {
	c.limit = boundArg(&c.command, "limit", n)
	return c
}

// GetTable, prefix uygulanmış tablo adını döndürür.
func (c *UpdateCommand) GetTable() string {
	return c.qb.table(c.table)
}

func (c *UpdateCommand) GetAssignments() []dialect.Assignment { return c.assignments }
func (c *UpdateCommand) GetOrders() []dialect.OrderClause     { return c.orders }
func (c *UpdateCommand) GetLimit() *int                       { return c.limit }
