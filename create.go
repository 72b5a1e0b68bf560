package sqlforge

import "github.com/biyonik/go-sqlforge/schema"

// -----------------------------------------------------------------------------
//  CREATE TABLE
//
//  CreateCommand, creating modundaki bir schema.Blueprint'i sarar. Kolonlar,
//  anahtarlar ve tablo seçenekleri blueprint'e kaydedilir; derleme grammar'ın
//  CompileCreate metoduna bırakılır. Birincil anahtar verilmezse ilk
//  AUTO_INCREMENT kolonu birincil anahtar olur.
//
//	_, err := db.Query().Create("posts").
//	    AddColumn(
//	        schema.Integer("id", 11).Unsigned().AutoIncrement(),
//	        schema.Varchar("title", 200),
//	        schema.Integer("user_id", 11).Unsigned(),
//	    ).
//	    AddForeignKey(schema.Foreign("user_id").References("id").On("users")).
//	    Engine("InnoDB").
//	    IfNotExists().
//	    Exec(ctx)
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// CreateCommand, CREATE TABLE ifadesini kurar.
type CreateCommand struct {
	command

	blueprint   *schema.Blueprint
	ifNotExists bool
}

func newCreateCommand(qb *QueryBuilder, bp *schema.Blueprint) *CreateCommand {
	c := &CreateCommand{blueprint: bp}
	c.command = newCommand(qb, "create", func() (string, []any, error) {
		sql, err := c.qb.grammar.CompileCreate(c)
		return sql, nil, err
	})
	return c
}

func (c *CreateCommand) AddColumn(columns ...*schema.Column) *CreateCommand {
	c.blueprint.AddColumn(columns...)
	return c
}

func (c *CreateCommand) AddPrimaryKey(columns ...string) *CreateCommand {
	c.blueprint.AddPrimaryKey(columns...)
	return c
}

// AddIndex, index ekler. Boş isim <tablo>_<kolonlar> olarak türetilir.
func (c *CreateCommand) AddIndex(name string, columns ...string) *CreateCommand {
	c.blueprint.AddIndex(name, columns...)
	return c
}

func (c *CreateCommand) AddUniqueIndex(name string, columns ...string) *CreateCommand {
	c.blueprint.AddUniqueIndex(name, columns...)
	return c
}

// AddForeignKey, yabancı anahtar ekler. Referans tablo da prefix alır.
func (c *CreateCommand) AddForeignKey(fk *schema.ForeignKey) *CreateCommand {
	c.blueprint.AddForeignKey(fk)
	return c
}

func (c *CreateCommand) Engine(engine string) *CreateCommand {
	c.blueprint.Engine(engine)
	return c
}

func (c *CreateCommand) Charset(charset string) *CreateCommand {
	c.blueprint.Charset(charset)
	return c
}

func (c *CreateCommand) Collate(collation string) *CreateCommand {
	c.blueprint.Collate(collation)
	return c
}

func (c *CreateCommand) Comment(text string) *CreateCommand {
	c.blueprint.Comment(text)
	return c
}

// Opt, ROW_FORMAT veya AUTO_INCREMENT gibi serbest bir tablo seçeneği ekler.
func (c *CreateCommand) Opt(name, value string) *CreateCommand {
	c.blueprint.Opt(name, value)
	return c
}

// IfNotExists, CREATE TABLE IF NOT EXISTS üretir.
func (c *CreateCommand) IfNotExists() *CreateCommand {
	c.ifNotExists = true
	return c
}

// Blueprint, alttaki blueprint'e doğrudan erişim verir.
func (c *CreateCommand) Blueprint(fn func(*schema.Blueprint)) *CreateCommand {
	if fn != nil {
		fn(c.blueprint)
	}
	return c
}

func (c *CreateCommand) GetBlueprint() *schema.Blueprint { return c.blueprint }
func (c *CreateCommand) GetPrefix() string               { return c.qb.prefix }
func (c *CreateCommand) IsIfNotExists() bool             { return c.ifNotExists }
