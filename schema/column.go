// Package schema, CREATE TABLE ve ALTER TABLE ifadeleri için tablo yapısını
// tarif eder. Column tek bir kolon tanımını taşır; Blueprint kolonları ve
// anahtar, index, yeniden adlandırma gibi tablo düzeyindeki komutları toplar.
// Blueprint'i SQL metnine dialect paketi çevirir.
package schema

import "strings"

// ColumnType, bir Column'un taşıyabileceği SQL tipleridir.
type ColumnType int

const (
	TypeInteger ColumnType = iota
	TypeTinyInteger
	TypeSmallInteger
	TypeMediumInteger
	TypeBigInteger
	TypeBoolean
	TypeDecimal
	TypeFloat
	TypeDouble
	TypeChar
	TypeVarchar
	TypeText
	TypeMediumText
	TypeLongText
	TypeDate
	TypeDateTime
	TypeTimestamp
	TypeTime
	TypeYear
	TypeBinary
	TypeBlob
	TypeEnum
	TypeSet
	TypeJSON
)

var typeNames = [...]string{
	TypeInteger:       "INT",
	TypeTinyInteger:   "TINYINT",
	TypeSmallInteger:  "SMALLINT",
	TypeMediumInteger: "MEDIUMINT",
	TypeBigInteger:    "BIGINT",
	TypeBoolean:       "TINYINT",
	TypeDecimal:       "DECIMAL",
	TypeFloat:         "FLOAT",
	TypeDouble:        "DOUBLE",
	TypeChar:          "CHAR",
	TypeVarchar:       "VARCHAR",
	TypeText:          "TEXT",
	TypeMediumText:    "MEDIUMTEXT",
	TypeLongText:      "LONGTEXT",
	TypeDate:          "DATE",
	TypeDateTime:      "DATETIME",
	TypeTimestamp:     "TIMESTAMP",
	TypeTime:          "TIME",
	TypeYear:          "YEAR",
	TypeBinary:        "BINARY",
	TypeBlob:          "BLOB",
	TypeEnum:          "ENUM",
	TypeSet:           "SET",
	TypeJSON:          "JSON",
}

// String, tipin SQL anahtar kelimesini döndürür.
func (t ColumnType) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// IsNumeric, UNSIGNED ve ZEROFILL'in bu tipe uygulanıp uygulanamayacağını bildirir.
func (t ColumnType) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeTinyInteger, TypeSmallInteger, TypeMediumInteger,
		TypeBigInteger, TypeBoolean, TypeDecimal, TypeFloat, TypeDouble:
		return true
	}
	return false
}

// IsTextual, CHARACTER SET ve COLLATE'in bu tipe uygulanıp uygulanamayacağını bildirir.
func (t ColumnType) IsTextual() bool {
	switch t {
	case TypeChar, TypeVarchar, TypeText, TypeMediumText, TypeLongText, TypeEnum, TypeSet:
		return true
	}
	return false
}

// ParseColumnType, "varchar" veya "bigint" gibi bir tip adını ColumnType'a
// çevirir. Tablo dosyalarındaki takma adlar ("int", "string", "bool") da
// kabul edilir.
func ParseColumnType(name string) (ColumnType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int", "integer":
		return TypeInteger, true
	case "tinyint", "tinyinteger":
		return TypeTinyInteger, true
	case "smallint", "smallinteger":
		return TypeSmallInteger, true
	case "mediumint", "mediuminteger":
		return TypeMediumInteger, true
	case "bigint", "biginteger":
		return TypeBigInteger, true
	case "bool", "boolean":
		return TypeBoolean, true
	case "decimal", "numeric":
		return TypeDecimal, true
	case "float":
		return TypeFloat, true
	case "double":
		return TypeDouble, true
	case "char":
		return TypeChar, true
	case "varchar", "string":
		return TypeVarchar, true
	case "text":
		return TypeText, true
	case "mediumtext":
		return TypeMediumText, true
	case "longtext":
		return TypeLongText, true
	case "date":
		return TypeDate, true
	case "datetime":
		return TypeDateTime, true
	case "timestamp":
		return TypeTimestamp, true
	case "time":
		return TypeTime, true
	case "year":
		return TypeYear, true
	case "binary":
		return TypeBinary, true
	case "blob":
		return TypeBlob, true
	case "enum":
		return TypeEnum, true
	case "set":
		return TypeSet, true
	case "json":
		return TypeJSON, true
	}
	return 0, false
}

// Expression, tırnaklanmadan aynen yazılan bir varsayılan değerdir,
// örn. Expression("CURRENT_TIMESTAMP").
type Expression string

// Placement, kolonun ALTER TABLE içindeki konumudur.
type Placement struct {
	First bool
	After string
}

// Column, CREATE ve ALTER tarafından paylaşılan tek bir kolon tanımıdır.
// Nullable çağrılmadıkça kolon NOT NULL'dır.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type Column struct {
	Type   ColumnType
	Name   string
	Params []any

	unsigned      bool
	zeroFill      bool
	nullable      bool
	hasDefault    bool
	defaultValue  any
	autoIncrement bool
	comment       string
	charset       string
	collation     string
	newName       string
	changed       bool
	placement     Placement

	err error
}

// NewColumn, herhangi bir tipte kolon oluşturur. params tip argümanlarıdır:
// uzunluk, hassasiyet ve ölçek ya da enum/set üyeleri.
func NewColumn(t ColumnType, name string, params ...any) *Column {
	return &Column{Type: t, Name: name, Params: params}
}

func sized(t ColumnType, name string, size []int) *Column {
	c := &Column{Type: t, Name: name}
	for _, s := range size {
		c.Params = append(c.Params, s)
	}
	return c
}

// Integer, INT kolonu döndürür; isteğe bağlı gösterim genişliği verilebilir.
func Integer(name string, width ...int) *Column { return sized(TypeInteger, name, width) }

// TinyInteger, TINYINT kolonu döndürür.
func TinyInteger(name string, width ...int) *Column { return sized(TypeTinyInteger, name, width) }

// SmallInteger, SMALLINT kolonu döndürür.
func SmallInteger(name string, width ...int) *Column { return sized(TypeSmallInteger, name, width) }

// MediumInteger, MEDIUMINT kolonu döndürür.
func MediumInteger(name string, width ...int) *Column { return sized(TypeMediumInteger, name, width) }

// BigInteger, BIGINT kolonu döndürür.
func BigInteger(name string, width ...int) *Column { return sized(TypeBigInteger, name, width) }

// Boolean, TINYINT(1) kolonu döndürür.
func Boolean(name string) *Column { return sized(TypeBoolean, name, []int{1}) }

// Decimal, DECIMAL(precision, scale) kolonu döndürür.
func Decimal(name string, precision, scale int) *Column {
	return sized(TypeDecimal, name, []int{precision, scale})
}

// Float, isteğe bağlı hassasiyet ve ölçekli FLOAT kolonu döndürür.
func Float(name string, size ...int) *Column { return sized(TypeFloat, name, size) }

// Double, isteğe bağlı hassasiyet ve ölçekli DOUBLE kolonu döndürür.
func Double(name string, size ...int) *Column { return sized(TypeDouble, name, size) }

// Char, CHAR(length) kolonu döndürür.
func Char(name string, length int) *Column { return sized(TypeChar, name, []int{length}) }

// Varchar, VARCHAR(length) kolonu döndürür.
func Varchar(name string, length int) *Column { return sized(TypeVarchar, name, []int{length}) }

func Text(name string) *Column       { return sized(TypeText, name, nil) }
func MediumText(name string) *Column { return sized(TypeMediumText, name, nil) }
func LongText(name string) *Column   { return sized(TypeLongText, name, nil) }
func Date(name string) *Column       { return sized(TypeDate, name, nil) }
func Time(name string) *Column       { return sized(TypeTime, name, nil) }
func Year(name string) *Column       { return sized(TypeYear, name, nil) }
func Blob(name string) *Column       { return sized(TypeBlob, name, nil) }
func JSON(name string) *Column       { return sized(TypeJSON, name, nil) }

// DateTime, isteğe bağlı kesirli saniye hassasiyetli DATETIME kolonu döndürür.
func DateTime(name string, fsp ...int) *Column { return sized(TypeDateTime, name, fsp) }

// Timestamp, isteğe bağlı kesirli saniye hassasiyetli TIMESTAMP kolonu döndürür.
func Timestamp(name string, fsp ...int) *Column { return sized(TypeTimestamp, name, fsp) }

// Binary, BINARY(length) kolonu döndürür.
func Binary(name string, length int) *Column { return sized(TypeBinary, name, []int{length}) }

// Enum, verilen üyelerle ENUM kolonu döndürür.
func Enum(name string, members ...string) *Column {
	c := &Column{Type: TypeEnum, Name: name}
	for _, m := range members {
		c.Params = append(c.Params, m)
	}
	return c
}

// Set, verilen üyelerle SET kolonu döndürür.
func Set(name string, members ...string) *Column {
	c := Enum(name, members...)
	c.Type = TypeSet
	return c
}

func (c *Column) Unsigned() *Column {
	c.unsigned = true
	return c
}

func (c *Column) ZeroFill() *Column {
	c.zeroFill = true
	return c
}

func (c *Column) Nullable() *Column {
	c.nullable = true
	return c
}

func (c *Column) NotNull() *Column {
	c.nullable = false
	return c
}

// Default, kolonun varsayılan değerini belirler. Tırnaklanmaması gereken
// değerler için Expression kullanılır.
func (c *Column) Default(v any) *Column {
	c.hasDefault = true
	c.defaultValue = v
	return c
}

// UseCurrent, DEFAULT CURRENT_TIMESTAMP ekler.
func (c *Column) UseCurrent() *Column {
	return c.Default(Expression("CURRENT_TIMESTAMP"))
}

func (c *Column) AutoIncrement() *Column {
	c.autoIncrement = true
	return c
}

func (c *Column) Comment(text string) *Column {
	c.comment = text
	return c
}

// Charset, kolonun karakter setini belirler. Yalnızca metin kolonları kabul eder.
func (c *Column) Charset(charset string) *Column {
	if !c.Type.IsTextual() {
		c.err = newMigrationError("charset", "", c.Name, "character set applies to textual columns only")
		return c
	}
	c.charset = charset
	return c
}

// Collate, kolonun collation'ını belirler. Yalnızca metin kolonları kabul eder.
func (c *Column) Collate(collation string) *Column {
	if !c.Type.IsTextual() {
		c.err = newMigrationError("collate", "", c.Name, "collation applies to textual columns only")
		return c
	}
	c.collation = collation
	return c
}

// Rename, kolonu newName olarak yeniden adlandırılmış işaretler; ALTER CHANGE üretir.
func (c *Column) Rename(newName string) *Column {
	c.newName = newName
	c.changed = true
	return c
}

// Change, kolonu değişmiş olarak işaretler; ALTER MODIFY yerine CHANGE üretir.
func (c *Column) Change() *Column {
	c.changed = true
	return c
}

func (c *Column) First() *Column {
	c.placement = Placement{First: true}
	return c
}

func (c *Column) After(column string) *Column {
	c.placement = Placement{After: column}
	return c
}

func (c *Column) IsUnsigned() bool        { return c.unsigned }
func (c *Column) IsZeroFill() bool        { return c.zeroFill }
func (c *Column) IsNullable() bool        { return c.nullable }
func (c *Column) IsAutoIncrement() bool   { return c.autoIncrement }
func (c *Column) IsChanged() bool         { return c.changed }
func (c *Column) HasDefault() bool        { return c.hasDefault }
func (c *Column) DefaultValue() any       { return c.defaultValue }
func (c *Column) CommentText() string     { return c.comment }
func (c *Column) CharsetName() string     { return c.charset }
func (c *Column) CollationName() string   { return c.collation }
func (c *Column) GetPlacement() Placement { return c.placement }
func (c *Column) Err() error              { return c.err }

// TargetName, ifade çalıştıktan sonra kolonun taşıyacağı isimdir.
func (c *Column) TargetName() string {
	if c.newName != "" {
		return c.newName
	}
	return c.Name
}
