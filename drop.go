package sqlforge

import (
	"fmt"

	"github.com/biyonik/go-sqlforge/dialect"
)

// DropCommand, DROP TABLE veya DROP DATABASE ifadesini kurar.
//
//	qb.Drop().Table("sessions", "tokens").IfExists()
//	// DROP TABLE IF EXISTS `p_sessions`, `p_tokens`;
//
// Tablo adları prefix alır, veritabanı adları almaz.
type DropCommand struct {
	command

	target   dialect.DropTarget
	targeted bool
	names    []string
	ifExists bool
}

func newDropCommand(qb *QueryBuilder) *DropCommand {
	c := &DropCommand{}
	c.command = newCommand(qb, "drop", func() (string, []any, error) {
		sql, err := c.qb.grammar.CompileDrop(c)
		return sql, nil, err
	})
	return c
}

// Table, silinecek tabloları ekler.
func (c *DropCommand) Table(names ...string) *DropCommand {
	c.setTarget(dialect.DropTable)
	c.names = append(c.names, names...)
	return c
}

// Database, silinecek veritabanını ayarlar.
func (c *DropCommand) Database(name string) *DropCommand {
	c.setTarget(dialect.DropDatabase)
	c.names = append(c.names, name)
	return c
}

// IfExists, IF EXISTS ekler.
func (c *DropCommand) IfExists() *DropCommand {
	c.ifExists = true
	return c
}

func (c *DropCommand) setTarget(t dialect.DropTarget) {
	if c.targeted && c.target != t {
		c.addErr(fmt.Errorf("%w: drop cannot mix tables and databases", ErrInvalidArguments))
	}
	c.target = t
	c.targeted = true
}

func (c *DropCommand) GetTarget() dialect.DropTarget { return c.target }
func (c *DropCommand) IsIfExists() bool              { return c.ifExists }

// GetNames, hedef isimleri döndürür; tablo adları prefix uygulanmış gelir.
func (c *DropCommand) GetNames() []string {
	if c.target == dialect.DropDatabase {
		return c.names
	}
	names := make([]string, len(c.names))
	for i, n := range c.names {
		names[i] = c.qb.table(n)
	}
	return names
}
