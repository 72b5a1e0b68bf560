package sqlforge

import "github.com/biyonik/go-sqlforge/dialect"

// -----------------------------------------------------------------------------
//  Koşul Ağacı
//
//  Select, Update, Delete ve Group aynı WHERE metodlarını paylaşır. conditions
//  tipi bu metodları bir kez tanımlar; T, zincirin devam ettiği tiptir
//  (*SelectCommand, *Group, ...). Değerler burada, API sınırında,
//  dialect.ValueOf ile bir kez sınıflandırılır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

type conditions[T any] struct {
	wheres []dialect.WhereClause
	self   T
}

// GetWheres, koşul düğümlerini ekleme sırasıyla döndürür.
func (w *conditions[T]) GetWheres() []dialect.WhereClause {
	return w.wheres
}

func (w *conditions[T]) basic(boolean dialect.WhereBoolean, column, operator string, value any) T {
	w.wheres = append(w.wheres, dialect.WhereClause{
		Type:     dialect.WhereTypeBasic,
		Boolean:  boolean,
		Column:   column,
		Operator: operator,
		Value:    dialect.ValueOf(value),
	})
	return w.self
}

func (w *conditions[T]) null(boolean dialect.WhereBoolean, column string, not bool) T {
	t := dialect.WhereTypeNull
	if not {
		t = dialect.WhereTypeNotNull
	}
	w.wheres = append(w.wheres, dialect.WhereClause{Type: t, Boolean: boolean, Column: column})
	return w.self
}

func (w *conditions[T]) raw(boolean dialect.WhereBoolean, sql string, bindings []any) T {
	w.wheres = append(w.wheres, dialect.WhereClause{
		Type:     dialect.WhereTypeRaw,
		Boolean:  boolean,
		Raw:      sql,
		Bindings: bindings,
	})
	return w.self
}

// enclose, fn'e yeni bir Group verir ve dönen grubu parantezli düğüm olarak
// ekler. nil veya boş grup yok sayılır.
func (w *conditions[T]) enclose(boolean dialect.WhereBoolean, fn func(*Group) *Group) T {
	if fn == nil {
		return w.self
	}
	g := fn(NewGroup())
	if g == nil || len(g.wheres) == 0 {
		return w.self
	}
	w.wheres = append(w.wheres, dialect.WhereClause{
		Type:    dialect.WhereTypeNested,
		Boolean: boolean,
		Nested:  g.wheres,
	})
	return w.self
}

// Where, AND ile bağlanan "column operator value" koşulu ekler.
//
//	Where("status", "=", "active")
//	Where("id", "IN", []int{1, 2, 3})
//	Where("created_at", "BETWEEN", []any{start, end})
//	Where("deleted_at", "IS", nil) // `deleted_at` IS NULL
func (w *conditions[T]) Where(column, operator string, value any) T {
	return w.basic(dialect.WhereBooleanAnd, column, operator, value)
}

// AndWhere, Where ile aynıdır.
func (w *conditions[T]) AndWhere(column, operator string, value any) T {
	return w.basic(dialect.WhereBooleanAnd, column, operator, value)
}

// OrWhere, OR ile bağlanan koşul ekler.
func (w *conditions[T]) OrWhere(column, operator string, value any) T {
	return w.basic(dialect.WhereBooleanOr, column, operator, value)
}

// WhereIn, "column IN (...)" koşulu ekler.
func (w *conditions[T]) WhereIn(column string, values any) T {
	return w.basic(dialect.WhereBooleanAnd, column, "IN", values)
}

// WhereNotIn, "column NOT IN (...)" koşulu ekler.
func (w *conditions[T]) WhereNotIn(column string, values any) T {
	return w.basic(dialect.WhereBooleanAnd, column, "NOT IN", values)
}

// WhereBetween, "column BETWEEN low AND high" koşulu ekler.
func (w *conditions[T]) WhereBetween(column string, low, high any) T {
	return w.basic(dialect.WhereBooleanAnd, column, "BETWEEN", []any{low, high})
}

func (w *conditions[T]) WhereNull(column string) T {
	return w.null(dialect.WhereBooleanAnd, column, false)
}

func (w *conditions[T]) WhereNotNull(column string) T {
	return w.null(dialect.WhereBooleanAnd, column, true)
}

func (w *conditions[T]) OrWhereNull(column string) T {
	return w.null(dialect.WhereBooleanOr, column, false)
}

func (w *conditions[T]) OrWhereNotNull(column string) T {
	return w.null(dialect.WhereBooleanOr, column, true)
}

// WhereRaw, ham SQL koşulu ekler. Bindings, ifadedeki "?" yer tutucularının
// değerleridir.
// Dikkat: sql metni doğrulanmaz; kullanıcı girdisi yalnızca bindings ile verilmelidir.
func (w *conditions[T]) WhereRaw(sql string, bindings ...any) T {
	return w.raw(dialect.WhereBooleanAnd, sql, bindings)
}

// OrWhereRaw, OR ile bağlanan ham SQL koşulu ekler.
func (w *conditions[T]) OrWhereRaw(sql string, bindings ...any) T {
	return w.raw(dialect.WhereBooleanOr, sql, bindings)
}

// Enclose, fn ile kurulan grubu AND ile parantez içinde ekler.
//
//	qb.Select().From("accounts").
//	    Where("x", "=", 1).
//	    OrEnclose(func(g *sqlforge.Group) *sqlforge.Group {
//	        return g.Where("id", "=", 10).OrWhere("balance", ">=", 1000)
//	    })
//	// ... WHERE `x` = ? OR ( `id` = ? OR `balance` >= ? );
func (w *conditions[T]) Enclose(fn func(*Group) *Group) T {
	return w.enclose(dialect.WhereBooleanAnd, fn)
}

// AndEnclose, Enclose ile aynıdır.
func (w *conditions[T]) AndEnclose(fn func(*Group) *Group) T {
	return w.enclose(dialect.WhereBooleanAnd, fn)
}

// OrEnclose, grubu OR ile ekler.
func (w *conditions[T]) OrEnclose(fn func(*Group) *Group) T {
	return w.enclose(dialect.WhereBooleanOr, fn)
}

// Group, parantez içinde derlenen bir koşul grubudur. Komutlarla aynı
// WHERE metodlarına sahiptir; iç içe grupların derinliği sınırsızdır.
type Group struct {
	conditions[*Group]
}

// NewGroup, boş bir koşul grubu oluşturur.
func NewGroup() *Group {
	g := &Group{}
	g.self = g
	return g
}

// Len, gruptaki doğrudan düğüm sayısını döndürür.
func (g *Group) Len() int {
	return len(g.wheres)
}
