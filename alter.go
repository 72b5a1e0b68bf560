package sqlforge

import "github.com/biyonik/go-sqlforge/schema"

// AlterCommand, mevcut bir tablo için ALTER TABLE ifadesini kurar. Tüm
// değişiklikler tek ifadede virgülle birleştirilir.
//
//	sql, err := qb.Alter("posts").
//	    AddColumn(schema.Varchar("slug", 200).After("title")).
//	    ModifyColumn(schema.Text("body").Nullable()).
//	    DropIndex("posts_legacy").
//	    Compile()
//	// ALTER TABLE `posts` ADD `slug` VARCHAR(200) NOT NULL AFTER `title`,
//	//   MODIFY `body` TEXT NULL, DROP INDEX `posts_legacy`;
//
// RENAME COLUMN, MySQL 8.0 öncesi bir sunucu sürümü ayarlanmışsa
// ErrUnsupported ile reddedilir; o durumda ChangeColumn kullanılmalıdır.
type AlterCommand struct {
	command

	blueprint *schema.Blueprint
}

func newAlterCommand(qb *QueryBuilder, bp *schema.Blueprint) *AlterCommand {
	c := &AlterCommand{blueprint: bp}
	c.command = newCommand(qb, "alter", func() (string, []any, error) {
		sql, err := c.qb.grammar.CompileAlter(c)
		return sql, nil, err
	})
	return c
}

// ----------------------------------------------------------------------------
// Columns
// ----------------------------------------------------------------------------

// AddColumn, kolon ekler. Kolonun First/After ayarı konumu belirler.
func (c *AlterCommand) AddColumn(columns ...*schema.Column) *AlterCommand {
	c.blueprint.AddColumn(columns...)
	return c
}

// ModifyColumn, kolonu yeniden tanımlar. Rename edilmiş kolon CHANGE olarak yazılır.
func (c *AlterCommand) ModifyColumn(column *schema.Column) *AlterCommand {
	c.blueprint.ModifyColumn(column)
	return c
}

// ChangeColumn, from kolonunu column tanımıyla değiştirir (CHANGE).
func (c *AlterCommand) ChangeColumn(from string, column *schema.Column) *AlterCommand {
	c.blueprint.ChangeColumn(from, column)
	return c
}

func (c *AlterCommand) DropColumn(names ...string) *AlterCommand {
	c.blueprint.DropColumn(names...)
	return c
}

func (c *AlterCommand) RenameColumn(from, to string) *AlterCommand {
	c.blueprint.RenameColumn(from, to)
	return c
}

// ----------------------------------------------------------------------------
// Keys
// ----------------------------------------------------------------------------

func (c *AlterCommand) AddPrimaryKey(columns ...string) *AlterCommand {
	c.blueprint.AddPrimaryKey(columns...)
	return c
}

func (c *AlterCommand) AddIndex(name string, columns ...string) *AlterCommand {
	c.blueprint.AddIndex(name, columns...)
	return c
}

func (c *AlterCommand) AddUniqueIndex(name string, columns ...string) *AlterCommand {
	c.blueprint.AddUniqueIndex(name, columns...)
	return c
}

func (c *AlterCommand) AddForeignKey(fk *schema.ForeignKey) *AlterCommand {
	c.blueprint.AddForeignKey(fk)
	return c
}

func (c *AlterCommand) DropPrimaryKey() *AlterCommand {
	c.blueprint.DropPrimaryKey()
	return c
}

func (c *AlterCommand) DropIndex(name string) *AlterCommand {
	c.blueprint.DropIndex(name)
	return c
}

func (c *AlterCommand) DropForeignKey(name string) *AlterCommand {
	c.blueprint.DropForeignKey(name)
	return c
}

// ----------------------------------------------------------------------------
// Table
// ----------------------------------------------------------------------------

// Rename, tabloyu yeniden adlandırır. Yeni isim de prefix alır.
func (c *AlterCommand) Rename(to string) *AlterCommand {
	c.blueprint.Rename(to)
	return c
}

func (c *AlterCommand) Engine(engine string) *AlterCommand {
	c.blueprint.Engine(engine)
	return c
}

func (c *AlterCommand) Charset(charset string) *AlterCommand {
	c.blueprint.Charset(charset)
	return c
}

func (c *AlterCommand) Collate(collation string) *AlterCommand {
	c.blueprint.Collate(collation)
	return c
}

func (c *AlterCommand) Comment(text string) *AlterCommand {
	c.blueprint.Comment(text)
	return c
}

func (c *AlterCommand) Opt(name, value string) *AlterCommand {
	c.blueprint.Opt(name, value)
	return c
}

// Blueprint, alttaki blueprint'e doğrudan erişim verir.
func (c *AlterCommand) Blueprint(fn func(*schema.Blueprint)) *AlterCommand {
	if fn != nil {
		fn(c.blueprint)
	}
	return c
}

func (c *AlterCommand) GetBlueprint() *schema.Blueprint { return c.blueprint }
func (c *AlterCommand) GetPrefix() string               { return c.qb.prefix }
