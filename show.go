package sqlforge

import (
	"context"
	"fmt"

	"github.com/biyonik/go-sqlforge/dialect"
)

// ShowCommand, sabit biçimli SHOW ifadelerini kurar. Parametre bağlamaz;
// LIKE kalıbı tırnaklı literal olarak yazılır.
//
//	rows, err := db.Query().Show().Columns("users").Like("email%").Rows(ctx)
//	// SHOW COLUMNS FROM `users` LIKE 'email%';
type ShowCommand struct {
	command

	kind  dialect.ShowKind
	table string
	like  string
}

func newShowCommand(qb *QueryBuilder) *ShowCommand {
	c := &ShowCommand{}
	c.command = newCommand(qb, "show", func() (string, []any, error) {
		sql, err := c.qb.grammar.CompileShow(c)
		return sql, nil, err
	})
	return c
}

// Tables, SHOW TABLES üretir. Varsayılan biçim budur.
func (c *ShowCommand) Tables() *ShowCommand {
	c.kind = dialect.ShowTables
	return c
}

func (c *ShowCommand) Databases() *ShowCommand {
	c.kind = dialect.ShowDatabases
	return c
}

func (c *ShowCommand) TableStatus() *ShowCommand {
	c.kind = dialect.ShowTableStatus
	return c
}

// Columns, SHOW COLUMNS FROM table üretir.
func (c *ShowCommand) Columns(table string) *ShowCommand {
	c.kind = dialect.ShowColumns
	c.table = table
	return c
}

// CreateTable, SHOW CREATE TABLE üretir. LIKE kabul etmez.
func (c *ShowCommand) CreateTable(table string) *ShowCommand {
	c.kind = dialect.ShowCreateTable
	c.table = table
	return c
}

// Like, sonuçları LIKE kalıbıyla süzer.
func (c *ShowCommand) Like(pattern string) *ShowCommand {
	c.like = pattern
	return c
}

// Rows, ifadeyi çalıştırır ve sonuçları kolon adı -> değer satırları olarak döndürür.
func (c *ShowCommand) Rows(ctx context.Context) ([]Row, error) {
	query, err := c.Compile()
	if err != nil {
		return nil, err
	}
	rows, err := c.qb.queryContext(ctx, c.name, query, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlforge: read columns: %w", err)
	}
	out := make([]Row, 0)
	for rows.Next() {
		row, err := scanRow(rows, columns)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlforge: rows iteration: %w", err)
	}
	return out, nil
}

func (c *ShowCommand) GetKind() dialect.ShowKind { return c.kind }
func (c *ShowCommand) GetLike() string           { return c.like }

// GetTable, prefix uygulanmış tablo adını döndürür.
func (c *ShowCommand) GetTable() string {
	return c.qb.table(c.table)
}
