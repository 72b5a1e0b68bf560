package sqlforge

import (
	"slices"
	"sort"

	"github.com/biyonik/go-sqlforge/dialect"
)

// InsertCommand, bir veya birden fazla satırlık INSERT ifadesini kurar.
//
//	res, err := db.Query().Insert().Into("users").
//	    Values(map[string]any{"name": "Ali", "email": "ali@example.com"}).
//	    Values(map[string]any{"name": "Veli", "email": "veli@example.com"}).
//	    Exec(ctx)
//	id, _ := res.LastInsertID()
//
// Tüm satırlar aynı kolon kümesini taşımalıdır; aksi halde derleme
// dialect.ErrInconsistentBatch döndürür.
type InsertCommand struct {
	command

	table  string
	rows   [][]dialect.Assignment
	upsert []string
}

func newInsertCommand(qb *QueryBuilder) *InsertCommand {
	c := &InsertCommand{}
	c.command = newCommand(qb, "insert", func() (string, []any, error) {
		if err := c.checkBatch(); err != nil {
			return "", nil, err
		}
		return c.qb.grammar.CompileInsert(c)
	})
	return c
}

// Into, hedef tabloyu ayarlar.
func (c *InsertCommand) Into(table string) *InsertCommand {
	c.table = table
	return c
}

// Values, yeni bir satır ekler. Kolonlar alfabetik sırayla yazılır.
func (c *InsertCommand) Values(values map[string]any) *InsertCommand {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := make([]dialect.Assignment, 0, len(keys))
	for _, k := range keys {
		row = append(row, dialect.Assignment{Column: k, Value: dialect.ValueOf(values[k])})
	}
	c.rows = append(c.rows, row)
	return c
}

// Set, son satıra bir kolon ekler; satır yoksa yeni satır açar. Aynı kolon
// tekrar verilirse değeri güncellenir.
func (c *InsertCommand) Set(column string, value any) *InsertCommand {
	if len(c.rows) == 0 {
		c.rows = append(c.rows, nil)
	}
	last := len(c.rows) - 1
	c.rows[last] = setAssignment(c.rows[last], column, value)
	return c
}

// OnDuplicateKeyUpdate, çakışmada güncellenecek kolonları belirler:
// ON DUPLICATE KEY UPDATE `col` = VALUES(`col`).
func (c *InsertCommand) OnDuplicateKeyUpdate(columns ...string) *InsertCommand {
	c.upsert = append(c.upsert, columns...)
	return c
}

// checkBatch, her satırın ilk satırla aynı kolon kümesini taşıdığını doğrular.
func (c *InsertCommand) checkBatch() error {
	columns := c.GetColumns()
	for _, row := range c.rows[min(1, len(c.rows)):] {
		if len(row) != len(columns) {
			return dialect.ErrInconsistentBatch
		}
		for _, a := range row {
			if !slices.Contains(columns, a.Column) {
				return dialect.ErrInconsistentBatch
			}
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// dialect.InsertQuery
// ----------------------------------------------------------------------------

// GetTable, prefix uygulanmış tablo adını döndürür.
func (c *InsertCommand) GetTable() string {
	return c.qb.table(c.table)
}

// GetColumns, ilk satırın kolon sırasını döndürür.
func (c *InsertCommand) GetColumns() []string {
	if len(c.rows) == 0 {
		return nil
	}
	columns := make([]string, len(c.rows[0]))
	for i, a := range c.rows[0] {
		columns[i] = a.Column
	}
	return columns
}

// GetRows, her satırın değerlerini GetColumns sırasına göre döndürür.
func (c *InsertCommand) GetRows() [][]dialect.Value {
	columns := c.GetColumns()
	out := make([][]dialect.Value, len(c.rows))
	for i, row := range c.rows {
		values := make([]dialect.Value, len(columns))
		for j, col := range columns {
			values[j] = dialect.Literal{V: nil}
			for _, a := range row {
				if a.Column == col {
					values[j] = a.Value
					break
				}
			}
		}
		out[i] = values
	}
	return out
}

func (c *InsertCommand) GetUpsertColumns() []string { return c.upsert }

// setAssignment, kolonu listede günceller veya sona ekler.
func setAssignment(list []dialect.Assignment, column string, value any) []dialect.Assignment {
	v := dialect.ValueOf(value)
	for i := range list {
		if list[i].Column == column {
			list[i].Value = v
			return list
		}
	}
	return append(list, dialect.Assignment{Column: column, Value: v})
}
