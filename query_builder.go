package sqlforge

import (
	"context"
	"fmt"
	"strings"

	"github.com/biyonik/go-sqlforge/dialect"
	"github.com/biyonik/go-sqlforge/schema"
)

// QueryBuilder, tek bir SQL komutunu seçip derlemek ve çalıştırmak için
// kullanılan giriş noktasıdır.
//
// Bir QueryBuilder aynı anda en fazla bir aktif komut taşır. Select, Insert,
// Update, Delete, Alter, Create, Drop ve Show metodları komutu seçer ve tipli
// alt builder'ı döndürür; ikinci bir seçim yeni komuta ErrCommandAlreadySelected
// hatasını kaydeder ve ilk komut aktif kalır.
//
//	qb := sqlforge.New(sqlforge.WithTablePrefix("p_"))
//	sql, err := qb.Select("a", "b").From("table").Compile()
//	// SELECT `a`, `b` FROM `p_table`;
//
// QueryBuilder örnekleri concurrent-safe değildir; her goroutine kendi
// builder'ını DB.Query() ile almalıdır.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type QueryBuilder struct {
	prefix   string
	grammar  dialect.Grammar
	executor QueryExecutor
	scanner  Scanner
	logger   Logger
	debug    bool

	active Command

	// Accumulated error
	err error
}

// Select, SELECT komutunu seçer. Kolon verilmezse "*" kullanılır.
func (qb *QueryBuilder) Select(columns ...string) *SelectCommand {
	c := newSelectCommand(qb)
	c.Columns(columns...)
	qb.activate(c, &c.command)
	return c
}

// Insert, INSERT komutunu seçer.
func (qb *QueryBuilder) Insert() *InsertCommand {
	c := newInsertCommand(qb)
	qb.activate(c, &c.command)
	return c
}

// Update, UPDATE komutunu seçer.
func (qb *QueryBuilder) Update() *UpdateCommand {
	c := newUpdateCommand(qb)
	qb.activate(c, &c.command)
	return c
}

// Delete, DELETE komutunu seçer.
func (qb *QueryBuilder) Delete() *DeleteCommand {
	c := newDeleteCommand(qb)
	qb.activate(c, &c.command)
	return c
}

// Alter, verilen tablo için ALTER TABLE komutunu seçer.
func (qb *QueryBuilder) Alter(table string) *AlterCommand {
	c := newAlterCommand(qb, schema.NewBlueprint(table, false))
	qb.activate(c, &c.command)
	return c
}

// Create, verilen tablo için CREATE TABLE komutunu seçer.
func (qb *QueryBuilder) Create(table string) *CreateCommand {
	c := newCreateCommand(qb, schema.NewBlueprint(table, true))
	qb.activate(c, &c.command)
	return c
}

// Drop, DROP TABLE / DROP DATABASE komutunu seçer.
func (qb *QueryBuilder) Drop() *DropCommand {
	c := newDropCommand(qb)
	qb.activate(c, &c.command)
	return c
}

// Show, SHOW komutunu seçer.
func (qb *QueryBuilder) Show() *ShowCommand {
	c := newShowCommand(qb)
	qb.activate(c, &c.command)
	return c
}

// Blueprint, hazır bir Blueprint'ten komut seçer: creating modundaki
// blueprint CREATE, diğerleri ALTER olur. Tablo dosyaları bu yoldan derlenir.
func (qb *QueryBuilder) Blueprint(bp *schema.Blueprint) Command {
	if bp.Creating() {
		c := newCreateCommand(qb, bp)
		qb.activate(c, &c.command)
		return c
	}
	c := newAlterCommand(qb, bp)
	qb.activate(c, &c.command)
	return c
}

// Command, komutu adıyla seçer. Alter ve Create tam olarak bir argüman
// (tablo adı) bekler; Select argümanları kolon olarak alır; diğerleri
// argüman kabul etmez.
//
//	cmd, err := qb.Command("alter", "posts")
func (qb *QueryBuilder) Command(name string, args ...string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var want int
	switch name {
	case "select":
		want = -1
	case "insert", "update", "delete", "drop", "show":
		want = 0
	case "alter", "create":
		want = 1
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		qb.err = err
		return nil, err
	}
	if want >= 0 && len(args) != want {
		err := fmt.Errorf("%w: %s expects %d, got %d", ErrInvalidArguments, name, want, len(args))
		qb.err = err
		return nil, err
	}
	if qb.active != nil {
		err := fmt.Errorf("%w: %s", ErrCommandAlreadySelected, name)
		qb.err = err
		return nil, err
	}

	switch name {
	case "select":
		return qb.Select(args...), nil
	case "insert":
		return qb.Insert(), nil
	case "update":
		return qb.Update(), nil
	case "delete":
		return qb.Delete(), nil
	case "drop":
		return qb.Drop(), nil
	case "show":
		return qb.Show(), nil
	case "alter":
		return qb.Alter(args[0]), nil
	default:
		return qb.Create(args[0]), nil
	}
}

// activate, c'yi aktif komut yapar. Zaten bir komut seçiliyse hata yeni
// komuta kaydedilir.
func (qb *QueryBuilder) activate(c Command, base *command) {
	if qb.active != nil {
		err := fmt.Errorf("%w: %s (active: %s)", ErrCommandAlreadySelected, c.Name(), qb.active.Name())
		base.addErr(err)
		qb.err = err
		return
	}
	qb.active = c
}

// Active, seçili komutu döndürür.
func (qb *QueryBuilder) Active() (Command, error) {
	if qb.active == nil {
		return nil, ErrNoCommand
	}
	return qb.active, nil
}

// Compile, aktif komutu derler.
func (qb *QueryBuilder) Compile() (string, error) {
	if qb.active == nil {
		return "", ErrNoCommand
	}
	return qb.active.Compile()
}

// Parameters, aktif komutun parametrelerini döndürür. Komut seçilmemişse nil.
func (qb *QueryBuilder) Parameters() []any {
	if qb.active == nil {
		return nil
	}
	return qb.active.Parameters()
}

// ToSQL, aktif komutun SQL metnini ve parametrelerini birlikte döndürür.
func (qb *QueryBuilder) ToSQL() (string, []any, error) {
	if qb.active == nil {
		return "", nil, ErrNoCommand
	}
	sql, err := qb.active.Compile()
	if err != nil {
		return "", nil, err
	}
	return sql, qb.active.Parameters(), nil
}

// Exec, aktif komutu executor üzerinde çalıştırır.
func (qb *QueryBuilder) Exec(ctx context.Context) (*QueryResult, error) {
	if qb.active == nil {
		return nil, ErrNoCommand
	}
	return qb.active.Exec(ctx)
}

// SetPrefix, tablo adlarına eklenecek prefix'i ayarlar. Prefix derleme
// anında okunur, yani komut seçildikten sonra da değiştirilebilir.
func (qb *QueryBuilder) SetPrefix(prefix string) *QueryBuilder {
	qb.prefix = prefix
	return qb
}

// Prefix, aktif tablo prefix'ini döndürür.
func (qb *QueryBuilder) Prefix() string {
	return qb.prefix
}

// Grammar, builder'ın kullandığı grameri döndürür.
func (qb *QueryBuilder) Grammar() dialect.Grammar {
	return qb.grammar
}

// Reset, aktif komutu ve birikmiş hatayı temizler; bağlantı ayarları korunur.
func (qb *QueryBuilder) Reset() *QueryBuilder {
	qb.active = nil
	qb.err = nil
	return qb
}

// Err, builder seviyesinde biriken son kullanım hatasını döndürür.
func (qb *QueryBuilder) Err() error {
	return qb.err
}

// table, prefix'i uygulanmış tablo adını döndürür.
func (qb *QueryBuilder) table(name string) string {
	return dialect.PrefixTable(qb.prefix, name)
}
