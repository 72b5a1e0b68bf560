package schema

import (
	"errors"
	"strings"
)

// CommandKind, Blueprint üzerine kaydedilen tablo düzeyindeki işlemin türüdür.
type CommandKind int

const (
	CommandAddColumn CommandKind = iota
	CommandModifyColumn
	CommandChangeColumn
	CommandDropColumn
	CommandRenameColumn
	CommandPrimary
	CommandDropPrimary
	CommandIndex
	CommandUnique
	CommandDropIndex
	CommandForeign
	CommandDropForeign
	CommandRename
	CommandEngine
	CommandCharset
	CommandCollate
	CommandComment
	CommandOption
)

// Foreign key referans eylemleri.
const (
	ActionRestrict   = "RESTRICT"
	ActionCascade    = "CASCADE"
	ActionSetNull    = "SET NULL"
	ActionNoAction   = "NO ACTION"
	ActionSetDefault = "SET DEFAULT"
)

// Command, kaydedilmiş tek bir Blueprint işlemidir. Hangi alanların dolu
// olduğu Kind'a bağlıdır.
type Command struct {
	Kind    CommandKind
	Column  *Column
	From    string
	Name    string
	Columns []string
	Foreign *ForeignKey
	Value   string
}

// ForeignKey, bir FOREIGN KEY ... REFERENCES tanımıdır.
type ForeignKey struct {
	Name       string
	Columns    []string
	Table      string
	RefColumns []string
	OnDelete   string
	OnUpdate   string
}

// Foreign, verilen yerel kolonlar üzerinde bir foreign key tanımı başlatır.
//
//	schema.Foreign("user_id").References("id").On("users").OnDeleteAction(schema.ActionCascade)
func Foreign(columns ...string) *ForeignKey {
	return &ForeignKey{Columns: columns, OnDelete: ActionRestrict, OnUpdate: ActionRestrict}
}

func (f *ForeignKey) References(columns ...string) *ForeignKey {
	f.RefColumns = columns
	return f
}

// On, referans verilen tabloyu (prefix'siz) belirler.
func (f *ForeignKey) On(table string) *ForeignKey {
	f.Table = table
	return f
}

func (f *ForeignKey) Named(name string) *ForeignKey {
	f.Name = name
	return f
}

func (f *ForeignKey) OnDeleteAction(action string) *ForeignKey {
	f.OnDelete = strings.ToUpper(action)
	return f
}

func (f *ForeignKey) OnUpdateAction(action string) *ForeignKey {
	f.OnUpdate = strings.ToUpper(action)
	return f
}

// Blueprint, bir tablo değişikliğinin bellekteki tarifidir. Oluşturma
// modunda CREATE TABLE, aksi halde ALTER TABLE olarak derlenir.
//
// Eşzamanlı değişiklik için güvenli değildir.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type Blueprint struct {
	table    string
	creating bool
	commands []Command
	errs     []error
}

// NewBlueprint, table için boş bir blueprint döndürür.
func NewBlueprint(table string, creating bool) *Blueprint {
	return &Blueprint{table: table, creating: creating}
}

// Create, fn ile doldurulmuş oluşturma modunda bir blueprint döndürür.
func Create(table string, fn func(*Blueprint)) *Blueprint {
	b := NewBlueprint(table, true)
	if fn != nil {
		fn(b)
	}
	return b
}

// Table, fn ile doldurulmuş ALTER modunda bir blueprint döndürür.
func Table(table string, fn func(*Blueprint)) *Blueprint {
	b := NewBlueprint(table, false)
	if fn != nil {
		fn(b)
	}
	return b
}

func (b *Blueprint) TableName() string   { return b.table }
func (b *Blueprint) Creating() bool      { return b.creating }
func (b *Blueprint) Commands() []Command { return b.commands }

// Columns, AddColumn ile eklenen kolonları sırasıyla döndürür.
func (b *Blueprint) Columns() []*Column {
	cols := make([]*Column, 0)
	for _, cmd := range b.commands {
		if cmd.Kind == CommandAddColumn {
			cols = append(cols, cmd.Column)
		}
	}
	return cols
}

// Err, blueprint ve kolonları üzerinde biriken tüm hataları birleştirir.
func (b *Blueprint) Err() error {
	errs := append([]error(nil), b.errs...)
	for _, cmd := range b.commands {
		if cmd.Column != nil && cmd.Column.Err() != nil {
			errs = append(errs, cmd.Column.Err())
		}
	}
	return errors.Join(errs...)
}

func (b *Blueprint) push(cmd Command) *Blueprint {
	b.commands = append(b.commands, cmd)
	return b
}

// requireExisting, op henüz var olmayan bir tabloyu hedefliyorsa
// MigrationError kaydeder.
func (b *Blueprint) requireExisting(op, column string) bool {
	if b.creating {
		b.errs = append(b.errs, newMigrationError(op, b.table, column,
			"operation requires an existing table and cannot be used while creating"))
		return false
	}
	return true
}

func (b *Blueprint) AddColumn(columns ...*Column) *Blueprint {
	for _, c := range columns {
		b.push(Command{Kind: CommandAddColumn, Column: c})
	}
	return b
}

// ModifyColumn, mevcut bir kolonu yeniden tanımlar. Rename veya Change ile
// işaretlenmiş kolon CHANGE, diğerleri MODIFY olarak derlenir.
func (b *Blueprint) ModifyColumn(c *Column) *Blueprint {
	if !b.requireExisting("modifyColumn", c.Name) {
		return b
	}
	if c.IsChanged() {
		return b.push(Command{Kind: CommandChangeColumn, Column: c, From: c.Name})
	}
	return b.push(Command{Kind: CommandModifyColumn, Column: c})
}

// ChangeColumn, from kolonunu farklı bir isim taşıyabilen c tanımıyla değiştirir.
func (b *Blueprint) ChangeColumn(from string, c *Column) *Blueprint {
	if !b.requireExisting("changeColumn", from) {
		return b
	}
	c.Change()
	return b.push(Command{Kind: CommandChangeColumn, Column: c, From: from})
}

func (b *Blueprint) DropColumn(names ...string) *Blueprint {
	for _, name := range names {
		if b.requireExisting("dropColumn", name) {
			b.push(Command{Kind: CommandDropColumn, Name: name})
		}
	}
	return b
}

func (b *Blueprint) RenameColumn(from, to string) *Blueprint {
	if !b.requireExisting("renameColumn", from) {
		return b
	}
	return b.push(Command{Kind: CommandRenameColumn, From: from, Name: to})
}

func (b *Blueprint) AddPrimaryKey(columns ...string) *Blueprint {
	return b.push(Command{Kind: CommandPrimary, Columns: columns})
}

// AddIndex, düz bir index ekler. Boş isim tablo ve kolon adlarından türetilir.
func (b *Blueprint) AddIndex(name string, columns ...string) *Blueprint {
	if name == "" {
		name = b.IndexName(columns...)
	}
	return b.push(Command{Kind: CommandIndex, Name: name, Columns: columns})
}

// AddUniqueIndex, unique index ekler. Boş isim tablo ve kolon adlarından
// türetilir.
func (b *Blueprint) AddUniqueIndex(name string, columns ...string) *Blueprint {
	if name == "" {
		name = b.IndexName(columns...)
	}
	return b.push(Command{Kind: CommandUnique, Name: name, Columns: columns})
}

// AddForeignKey, foreign key ekler. İsimsiz anahtar fk_<table>_<cols> adını alır.
func (b *Blueprint) AddForeignKey(fk *ForeignKey) *Blueprint {
	if fk.Name == "" {
		fk.Name = b.ForeignKeyName(fk.Columns...)
	}
	return b.push(Command{Kind: CommandForeign, Name: fk.Name, Columns: fk.Columns, Foreign: fk})
}

func (b *Blueprint) DropPrimaryKey() *Blueprint {
	if !b.requireExisting("dropPrimaryKey", "") {
		return b
	}
	return b.push(Command{Kind: CommandDropPrimary})
}

func (b *Blueprint) DropIndex(name string) *Blueprint {
	if !b.requireExisting("dropIndex", "") {
		return b
	}
	return b.push(Command{Kind: CommandDropIndex, Name: name})
}

func (b *Blueprint) DropForeignKey(name string) *Blueprint {
	if !b.requireExisting("dropForeignKey", "") {
		return b
	}
	return b.push(Command{Kind: CommandDropForeign, Name: name})
}

// Rename, tabloyu yeniden adlandırır (prefix'siz isim).
func (b *Blueprint) Rename(to string) *Blueprint {
	if !b.requireExisting("rename", "") {
		return b
	}
	return b.push(Command{Kind: CommandRename, Name: to})
}

func (b *Blueprint) Engine(engine string) *Blueprint {
	return b.push(Command{Kind: CommandEngine, Value: engine})
}

func (b *Blueprint) Charset(charset string) *Blueprint {
	return b.push(Command{Kind: CommandCharset, Value: charset})
}

func (b *Blueprint) Collate(collation string) *Blueprint {
	return b.push(Command{Kind: CommandCollate, Value: collation})
}

func (b *Blueprint) Comment(text string) *Blueprint {
	return b.push(Command{Kind: CommandComment, Value: text})
}

// Opt, ROW_FORMAT veya AUTO_INCREMENT gibi serbest bir tablo seçeneği ekler.
func (b *Blueprint) Opt(name, value string) *Blueprint {
	return b.push(Command{Kind: CommandOption, Name: strings.ToUpper(name), Value: value})
}

// IndexName, <table>_<col>[_<col>...] adını türetir.
func (b *Blueprint) IndexName(columns ...string) string {
	return strings.ToLower(strings.Join(append([]string{b.table}, columns...), "_"))
}

// ForeignKeyName, fk_<table>_<col>[_<col>...] adını türetir.
func (b *Blueprint) ForeignKeyName(columns ...string) string {
	return "fk_" + b.IndexName(columns...)
}
