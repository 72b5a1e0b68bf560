// Package dialect, sqlforge komutlarını MySQL SQL metnine ve sıralı parametre
// listesine çeviren dilbilgisi (grammar) katmanını sağlar.
//
// Komut nesneleri (SELECT, INSERT, UPDATE, DELETE, CREATE, ALTER, DROP, SHOW)
// ana pakette yaşar; bu paket onları yalnızca aşağıdaki getter arayüzleri
// üzerinden görür. Böylece ana paket ile dialect arasında import döngüsü oluşmaz.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

import (
	"errors"
	"strings"

	"github.com/biyonik/go-sqlforge/schema"
)

// ----------------------------------------------------------------------------
// Statement Interfaces (import döngüsünü kırmak için)
// ----------------------------------------------------------------------------

// SelectQuery, CompileSelect'in bir SELECT komutundan okuduğu alanlar.
// Tablo adları prefix uygulanmış olarak gelir.
type SelectQuery interface {
	GetTables() []string
	GetColumns() []string
	IsDistinct() bool
	GetWheres() []WhereClause
	GetOrders() []OrderClause
	GetLimit() *int
	GetOffset() *int
}

// InsertQuery, INSERT komutunun derlenebilir görünümüdür. Her satır
// GetColumns ile aynı sırada değer taşır.
type InsertQuery interface {
	GetTable() string
	GetColumns() []string
	GetRows() [][]Value
	GetUpsertColumns() []string
}

// UpdateQuery, UPDATE komutunun derlenebilir görünümüdür.
type UpdateQuery interface {
	GetTable() string
	GetAssignments() []Assignment
	GetWheres() []WhereClause
	GetOrders() []OrderClause
	GetLimit() *int
}

// DeleteQuery, DELETE komutunun derlenebilir görünümüdür.
type DeleteQuery interface {
	GetTable() string
	GetWheres() []WhereClause
	GetOrders() []OrderClause
	GetLimit() *int
}

// CreateQuery, CREATE TABLE için blueprint ve prefix bilgisini taşır.
type CreateQuery interface {
	GetBlueprint() *schema.Blueprint
	GetPrefix() string
	IsIfNotExists() bool
}

// AlterQuery, ALTER TABLE için blueprint ve prefix bilgisini taşır.
type AlterQuery interface {
	GetBlueprint() *schema.Blueprint
	GetPrefix() string
}

// DropQuery, DROP TABLE / DROP DATABASE komutunun görünümüdür.
type DropQuery interface {
	GetTarget() DropTarget
	GetNames() []string
	IsIfExists() bool
}

// ShowQuery, SHOW ailesinden tek bir ifadeyi tanımlar.
type ShowQuery interface {
	GetKind() ShowKind
	GetTable() string
	GetLike() string
}

// ----------------------------------------------------------------------------
// Grammar Interface
// ----------------------------------------------------------------------------

// Grammar, komut nesnelerini veritabanına özgü SQL ifadelerine çevirir.
// Tüm metotlar saf fonksiyondur; aynı girdi için aynı çıktıyı üretir ve log yazmaz.
type Grammar interface {
	// Name, gramerin kimliğini döndürür (örn. "mysql").
	Name() string

	// Wrap, bir sütun adını tırnaklar. "a.b", "*" ve "col AS alias" desteklenir.
	Wrap(identifier string) (string, error)

	// WrapTable, tablo adını sarar ve "t alias" / "t AS alias" biçimlerini yönetir.
	WrapTable(table string) (string, error)

	// QuoteString, bir metni tek tırnaklı SQL literaline çevirir.
	QuoteString(s string) string

	// Operator, operatörü beyaz listeye göre doğrular ve normalize eder.
	Operator(op string) (string, error)

	// Placeholder, verilen indeks için parametre yer tutucusunu döndürür.
	Placeholder(index int) string

	// FormatDefault, bir kolon varsayılan değerini DEFAULT cümlesine yazılacak hale getirir.
	FormatDefault(v any) string

	CompileSelect(q SelectQuery) (string, []any, error)
	CompileInsert(q InsertQuery) (string, []any, error)
	CompileUpdate(q UpdateQuery) (string, []any, error)
	CompileDelete(q DeleteQuery) (string, []any, error)
	CompileCreate(q CreateQuery) (string, error)
	CompileAlter(q AlterQuery) (string, error)
	CompileDrop(q DropQuery) (string, error)
	CompileShow(q ShowQuery) (string, error)

	// CompileColumn, tek bir kolon tanımını derler. CREATE ve ALTER bunu paylaşır.
	CompileColumn(c *schema.Column) (string, error)
}

// ----------------------------------------------------------------------------
// Base Grammar (ortak fonksiyonlar)
// ----------------------------------------------------------------------------

// BaseGrammar, gramer implementasyonları için ortak alanları taşır.
type BaseGrammar struct {
	name string
}

// Name, gramerin adını döndürür.
func (g *BaseGrammar) Name() string {
	return g.name
}

// ----------------------------------------------------------------------------
// WHERE Clause Types
// ----------------------------------------------------------------------------

// WhereType, WHERE düğümünün türünü belirtir.
type WhereType int

const (
	WhereTypeBasic WhereType = iota
	WhereTypeNull
	WhereTypeNotNull
	WhereTypeRaw
	WhereTypeNested
)

// String, WhereType'ın string temsilini döndürür.
func (t WhereType) String() string {
	names := [...]string{"Basic", "Null", "NotNull", "Raw", "Nested"}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// WhereBoolean, AND veya OR bağlacını belirtir.
type WhereBoolean int

const (
	WhereBooleanAnd WhereBoolean = iota
	WhereBooleanOr
)

// String, SQL için boolean kelimesini döndürür.
func (b WhereBoolean) String() string {
	if b == WhereBooleanOr {
		return "OR"
	}
	return "AND"
}

// WhereClause, koşul ağacındaki tek bir düğümdür. Nested türündeki düğümler
// alt düğümlerini Nested alanında taşır ve "( ... )" olarak derlenir.
type WhereClause struct {
	Type     WhereType
	Boolean  WhereBoolean
	Column   string
	Operator string
	Value    Value
	Nested   []WhereClause
	Raw      string // WhereTypeRaw için ham SQL
	Bindings []any  // Raw SQL bağlamaları
}

// ----------------------------------------------------------------------------
// ORDER BY / SET Types
// ----------------------------------------------------------------------------

// OrderDirection, sıralama yönünü belirtir. Boş yön, MySQL varsayılanını (ASC) kullanır.
type OrderDirection string

const (
	OrderNone OrderDirection = ""
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// ParseOrderDirection, "asc"/"desc" kelimelerini büyük-küçük harf duyarsız tanır.
func ParseOrderDirection(s string) (OrderDirection, bool) {
	switch {
	case strings.EqualFold(s, "asc"):
		return OrderAsc, true
	case strings.EqualFold(s, "desc"):
		return OrderDesc, true
	}
	return OrderNone, false
}

// OrderClause, ORDER BY ifadesini temsil eder.
type OrderClause struct {
	Column    string
	Direction OrderDirection
	Raw       string // RAND() gibi ham ifade; tırnaklanmaz
}

// Assignment, UPDATE ... SET içindeki tek bir "kolon = değer" çiftidir.
type Assignment struct {
	Column string
	Value  Value
}

// ----------------------------------------------------------------------------
// DROP / SHOW Types
// ----------------------------------------------------------------------------

// DropTarget, DROP ifadesinin hedefidir.
type DropTarget int

const (
	DropTable DropTarget = iota
	DropDatabase
)

// ShowKind, desteklenen SHOW ifadeleri.
type ShowKind int

const (
	ShowTables ShowKind = iota
	ShowColumns
	ShowTableStatus
	ShowDatabases
	ShowCreateTable
)

// ----------------------------------------------------------------------------
// Errors
// ----------------------------------------------------------------------------

// ErrCompile, tüm CompileError değerlerinin errors.Is ile eşlendiği sentinel hatadır.
var ErrCompile = errors.New("sqlforge: cannot compile statement")

// Dialect implementasyonları için ortak hatalar.
var (
	ErrNoTable           = &CompileError{Message: "no table specified"}
	ErrNoColumns         = &CompileError{Message: "no columns specified"}
	ErrEmptyInsert       = &CompileError{Message: "insert has no rows"}
	ErrInconsistentBatch = &CompileError{Message: "inconsistent columns in batch"}
	ErrEmptyList         = &CompileError{Message: "empty list passed to IN"}
	ErrInvalidBetween    = &CompileError{Message: "BETWEEN requires exactly 2 values"}
	ErrNoChanges         = &CompileError{Message: "alter table has no changes"}
	ErrUnsupported       = &CompileError{Message: "statement not supported by server version"}
)

// CompileError, derleme sırasında ortaya çıkan yapısal hatayı temsil eder.
type CompileError struct {
	Message string
}

// Error, hatayı string olarak döndürür.
func (e *CompileError) Error() string {
	return "dialect: " + e.Message
}

// Is, errors.Is(err, ErrCompile) kontrolünü destekler.
func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

