package dialect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/biyonik/go-sqlforge/internal/validation"
)

/*
 * ----------------------------------------------------------------------------
 * MYSQL GRAMMAR IMPLEMENTATION
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, sqlforge komut nesnelerini çalıştırılabilir MySQL/MariaDB SQL
 * dizelerine ve sıralı parametre listesine dönüştüren "çevirmen" katmanıdır.
 *
 * Sorumluluklar:
 * 1. Sanitization: tablo ve kolon isimleri beyaz listeden geçirilip backtick ile sarılır.
 * 2. Compilation: SELECT, INSERT, UPDATE, DELETE ifadeleri doğru sırayla
 *    (SELECT -> FROM -> WHERE -> ORDER -> LIMIT) inşa edilir.
 * 3. Binding: parametreler, "?" yer tutucuları yazılırken aynı geçişte eklenir;
 *    bu yüzden parametre sırası her zaman metindeki sırayla aynıdır.
 *
 * DDL derleyicileri (CREATE, ALTER, DROP, SHOW) mysql_schema.go içindedir.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// unboundedLimit, OFFSET'in LIMIT olmadan kullanılamadığı MySQL'de
// "sınırsız" anlamına gelen en büyük BIGINT UNSIGNED değeridir.
const unboundedLimit = "18446744073709551615"

// columnAliasRegex, "expr AS alias" biçimini eşler.
var columnAliasRegex = regexp.MustCompile(`(?i)^(.+?)\s+as\s+([A-Za-z_][A-Za-z0-9_$]*)$`)

// MySQLGrammar, Grammar arayüzünü MySQL ve MariaDB için implemente eder.
//
// Sunucu sürümü bilinmiyorsa modern bir sunucu (8.0+) varsayılır.
type MySQLGrammar struct {
	BaseGrammar
	serverVersion *version.Version
}

// MySQLOption, MySQLGrammar yapılandırma fonksiyonudur.
type MySQLOption func(*MySQLGrammar)

// WithServerVersion, hedef sunucu sürümünü ayarlar (örn. "5.7.40" veya
// "8.0.34-0ubuntu0.22.04.1"). Ayrıştırılamayan sürümler yok sayılır.
func WithServerVersion(v string) MySQLOption {
	return func(g *MySQLGrammar) {
		_ = g.SetServerVersion(v)
	}
}

// MySQL, yeni bir MySQL dilbilgisi örneği oluşturur.
func MySQL(opts ...MySQLOption) *MySQLGrammar {
	g := &MySQLGrammar{BaseGrammar: BaseGrammar{name: "mysql"}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewMySQLGrammar, MySQL() kurucusuna verilen bir takma addır.
func NewMySQLGrammar(opts ...MySQLOption) *MySQLGrammar {
	return MySQL(opts...)
}

// SetServerVersion, sürüm metnini ayrıştırıp grammar'a kaydeder. "-log",
// "-MariaDB" gibi dağıtım sonekleri atılır. Boş metin sürüm bilgisini siler.
func (g *MySQLGrammar) SetServerVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		g.serverVersion = nil
		return nil
	}
	if i := strings.IndexAny(v, "-+ "); i > 0 {
		v = v[:i]
	}
	parsed, err := version.NewVersion(v)
	if err != nil {
		return fmt.Errorf("dialect: invalid server version %q: %w", v, err)
	}
	g.serverVersion = parsed
	return nil
}

// ServerVersion, ayarlanmış sunucu sürümünü döndürür; yoksa boş string.
func (g *MySQLGrammar) ServerVersion() string {
	if g.serverVersion == nil {
		return ""
	}
	return g.serverVersion.String()
}

// supports, sunucu sürümünün verilen kısıtı karşılayıp karşılamadığını bildirir.
func (g *MySQLGrammar) supports(constraint string) bool {
	if g.serverVersion == nil {
		return true
	}
	c, err := version.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(g.serverVersion)
}

// Wrap, bir tanımlayıcıyı backtick ile sarmalar.
//
//	"users.name"     -> "`users`.`name`"
//	"users.*"        -> "`users`.*"
//	"name AS n"      -> "`name` AS `n`"
func (g *MySQLGrammar) Wrap(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "*" {
		return "*", nil
	}

	if m := columnAliasRegex.FindStringSubmatch(identifier); m != nil {
		expr, err := g.wrapSegments(m[1])
		if err != nil {
			return "", err
		}
		alias, err := g.wrapSegments(m[2])
		if err != nil {
			return "", err
		}
		return expr + " AS " + alias, nil
	}

	return g.wrapSegments(identifier)
}

func (g *MySQLGrammar) wrapSegments(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if head, ok := strings.CutSuffix(identifier, ".*"); ok {
		wrapped, err := g.wrapSegments(head)
		if err != nil {
			return "", err
		}
		return wrapped + ".*", nil
	}

	if err := validation.ValidateIdentifier(identifier); err != nil {
		return "", err
	}

	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		parts[i] = "`" + part + "`"
	}
	return strings.Join(parts, "."), nil
}

// WrapTable, tablo ismini ve varsa takma adını güvenli bir şekilde sarmalar.
// "users u" ve "users as u" -> "`users` AS `u`".
func (g *MySQLGrammar) WrapTable(table string) (string, error) {
	name, alias, err := validation.ValidateTableWithAlias(table)
	if err != nil {
		return "", err
	}

	wrapped, err := g.wrapSegments(name)
	if err != nil {
		return "", err
	}
	if alias != "" {
		wrapped += " AS `" + alias + "`"
	}
	return wrapped, nil
}

// QuoteString, s'yi tek tırnaklı bir literal olarak döndürür. Ters bölü ve
// tek tırnak ters bölü ile kaçışlanır.
func (g *MySQLGrammar) QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// Operator, operatörü doğrular ve SQL'e yazılacak biçimini döndürür.
func (g *MySQLGrammar) Operator(op string) (string, error) {
	return validation.NormalizeOperator(op)
}

// Placeholder, MySQL için her zaman "?" döndürür.
// Index parametresi arayüz uyumluluğu için tutulur.
func (g *MySQLGrammar) Placeholder(index int) string {
	return "?"
}

// CompileSelect, bir SELECT sorgusunu parçalarından birleştirerek inşa eder.
func (g *MySQLGrammar) CompileSelect(q SelectQuery) (string, []any, error) {
	tables := q.GetTables()
	if len(tables) == 0 {
		return "", nil, ErrNoTable
	}

	var sql strings.Builder
	args := make([]any, 0)

	sql.WriteString("SELECT ")
	if q.IsDistinct() {
		sql.WriteString("DISTINCT ")
	}

	// Columns
	columns := q.GetColumns()
	if len(columns) == 0 {
		sql.WriteString("*")
	} else {
		wrappedCols := make([]string, len(columns))
		for i, col := range columns {
			wrapped, err := g.columnRef(col)
			if err != nil {
				return "", nil, err
			}
			wrappedCols[i] = wrapped
		}
		sql.WriteString(strings.Join(wrappedCols, ", "))
	}

	// FROM
	wrappedTables := make([]string, len(tables))
	for i, t := range tables {
		wrapped, err := g.WrapTable(t)
		if err != nil {
			return "", nil, err
		}
		wrappedTables[i] = wrapped
	}
	sql.WriteString(" FROM ")
	sql.WriteString(strings.Join(wrappedTables, ", "))

	if err := g.compileTail(&sql, &args, q.GetWheres(), q.GetOrders(), q.GetLimit(), q.GetOffset()); err != nil {
		return "", nil, err
	}

	sql.WriteString(";")
	return sql.String(), args, nil
}

// CompileInsert, bir veya birden çok satırlık INSERT sorgusu oluşturur.
//
// Tüm satırlar GetColumns ile aynı sayıda değer taşımalıdır; aksi halde
// ErrInconsistentBatch döner.
func (g *MySQLGrammar) CompileInsert(q InsertQuery) (string, []any, error) {
	if q.GetTable() == "" {
		return "", nil, ErrNoTable
	}
	columns := q.GetColumns()
	if len(columns) == 0 {
		return "", nil, ErrNoColumns
	}
	rows := q.GetRows()
	if len(rows) == 0 {
		return "", nil, ErrEmptyInsert
	}

	table, err := g.WrapTable(q.GetTable())
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	args := make([]any, 0, len(rows)*len(columns))

	sql.WriteString("INSERT INTO ")
	sql.WriteString(table)

	// Columns
	sql.WriteString(" (")
	wrappedCols := make([]string, len(columns))
	for i, col := range columns {
		wrapped, err := g.Wrap(col)
		if err != nil {
			return "", nil, err
		}
		wrappedCols[i] = wrapped
	}
	sql.WriteString(strings.Join(wrappedCols, ", "))
	sql.WriteString(") VALUES ")

	// Values for each row
	rowParts := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, ErrInconsistentBatch
		}
		parts := make([]string, len(row))
		for j, v := range row {
			text, vArgs, err := g.compileValue(v)
			if err != nil {
				return "", nil, err
			}
			parts[j] = text
			args = append(args, vArgs...)
		}
		rowParts[i] = "(" + strings.Join(parts, ", ") + ")"
	}
	sql.WriteString(strings.Join(rowParts, ", "))

	// ON DUPLICATE KEY UPDATE
	if upsert := q.GetUpsertColumns(); len(upsert) > 0 {
		updateParts := make([]string, len(upsert))
		for i, col := range upsert {
			wrapped, err := g.Wrap(col)
			if err != nil {
				return "", nil, err
			}
			updateParts[i] = wrapped + " = VALUES(" + wrapped + ")"
		}
		sql.WriteString(" ON DUPLICATE KEY UPDATE ")
		sql.WriteString(strings.Join(updateParts, ", "))
	}

	sql.WriteString(";")
	return sql.String(), args, nil
}

// CompileUpdate, UPDATE sorgusu oluşturur. SET parametreleri WHERE
// parametrelerinden önce gelir, çünkü metindeki "?" sırası budur.
func (g *MySQLGrammar) CompileUpdate(q UpdateQuery) (string, []any, error) {
	if q.GetTable() == "" {
		return "", nil, ErrNoTable
	}
	assignments := q.GetAssignments()
	if len(assignments) == 0 {
		return "", nil, ErrNoColumns
	}

	table, err := g.WrapTable(q.GetTable())
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	args := make([]any, 0)

	sql.WriteString("UPDATE ")
	sql.WriteString(table)

	// SET
	sql.WriteString(" SET ")
	setParts := make([]string, len(assignments))
	for i, a := range assignments {
		wrapped, err := g.Wrap(a.Column)
		if err != nil {
			return "", nil, err
		}
		text, vArgs, err := g.compileValue(a.Value)
		if err != nil {
			return "", nil, err
		}
		setParts[i] = wrapped + " = " + text
		args = append(args, vArgs...)
	}
	sql.WriteString(strings.Join(setParts, ", "))

	if err := g.compileTail(&sql, &args, q.GetWheres(), q.GetOrders(), q.GetLimit(), nil); err != nil {
		return "", nil, err
	}

	sql.WriteString(";")
	return sql.String(), args, nil
}

// CompileDelete, kayıt silme sorgusu (DELETE) oluşturur.
func (g *MySQLGrammar) CompileDelete(q DeleteQuery) (string, []any, error) {
	if q.GetTable() == "" {
		return "", nil, ErrNoTable
	}

	table, err := g.WrapTable(q.GetTable())
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	args := make([]any, 0)

	sql.WriteString("DELETE FROM ")
	sql.WriteString(table)

	if err := g.compileTail(&sql, &args, q.GetWheres(), q.GetOrders(), q.GetLimit(), nil); err != nil {
		return "", nil, err
	}

	sql.WriteString(";")
	return sql.String(), args, nil
}

// ----------------------------------------------------------------------------
// Internal helpers
// ----------------------------------------------------------------------------

// compileTail, WHERE, ORDER BY, LIMIT ve OFFSET kısımlarını sırayla ekler.
func (g *MySQLGrammar) compileTail(sql *strings.Builder, args *[]any, wheres []WhereClause, orders []OrderClause, limit, offset *int) error {
	if len(wheres) > 0 {
		whereSQL, whereArgs, err := g.compileWheres(wheres)
		if err != nil {
			return err
		}
		if whereSQL != "" {
			sql.WriteString(" WHERE ")
			sql.WriteString(whereSQL)
			*args = append(*args, whereArgs...)
		}
	}

	if len(orders) > 0 {
		orderSQL, err := g.compileOrders(orders)
		if err != nil {
			return err
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(orderSQL)
	}

	switch {
	case limit != nil:
		fmt.Fprintf(sql, " LIMIT %d", *limit)
	case offset != nil:
		sql.WriteString(" LIMIT " + unboundedLimit)
	}
	if offset != nil {
		fmt.Fprintf(sql, " OFFSET %d", *offset)
	}
	return nil
}

// columnRef, SELECT listesindeki bir öğeyi derler. COUNT(*) gibi ham
// ifadeler olduğu gibi kalır; "COUNT(*) AS total" alias'ı sarılır.
func (g *MySQLGrammar) columnRef(col string) (string, error) {
	col = strings.TrimSpace(col)
	if IsRawExpression(col) {
		return col, nil
	}
	if m := columnAliasRegex.FindStringSubmatch(col); m != nil && IsRawExpression(m[1]) {
		alias, err := g.wrapSegments(m[2])
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(m[1]) + " AS " + alias, nil
	}
	return g.Wrap(col)
}

// compileOrders, ORDER BY listesini derler.
func (g *MySQLGrammar) compileOrders(orders []OrderClause) (string, error) {
	parts := make([]string, len(orders))
	for i, order := range orders {
		if order.Raw != "" {
			parts[i] = order.Raw
			continue
		}
		wrapped, err := g.Wrap(order.Column)
		if err != nil {
			return "", err
		}
		switch order.Direction {
		case OrderNone:
			parts[i] = wrapped
		case OrderAsc, OrderDesc:
			parts[i] = wrapped + " " + string(order.Direction)
		default:
			return "", &CompileError{Message: "invalid order direction " + g.QuoteString(string(order.Direction))}
		}
	}
	return strings.Join(parts, ", "), nil
}

// compileWheres, koşul listesini birleştirir. Boş gruplar atlanır ve ilk
// yazılan düğümün önüne bağlaç konmaz.
func (g *MySQLGrammar) compileWheres(wheres []WhereClause) (string, []any, error) {
	var sql strings.Builder
	args := make([]any, 0)

	written := 0
	for _, where := range wheres {
		clauseSQL, clauseArgs, err := g.compileWhere(where)
		if err != nil {
			return "", nil, err
		}
		if clauseSQL == "" {
			continue
		}
		if written > 0 {
			sql.WriteString(" ")
			sql.WriteString(where.Boolean.String())
			sql.WriteString(" ")
		}
		sql.WriteString(clauseSQL)
		args = append(args, clauseArgs...)
		written++
	}

	return sql.String(), args, nil
}

// compileWhere, tekil bir koşul düğümünü uygun SQL parçasına dönüştürür.
func (g *MySQLGrammar) compileWhere(where WhereClause) (string, []any, error) {
	switch where.Type {
	case WhereTypeBasic:
		return g.compileWhereBasic(where)
	case WhereTypeNull:
		return g.compileWhereNull(where, false)
	case WhereTypeNotNull:
		return g.compileWhereNull(where, true)
	case WhereTypeRaw:
		return where.Raw, where.Bindings, nil
	case WhereTypeNested:
		return g.compileWhereNested(where)
	default:
		return "", nil, &CompileError{Message: "unknown where type " + where.Type.String()}
	}
}

// compileWhereBasic, "col OP value" karşılaştırmalarını derler. IN, BETWEEN
// ve IS NULL biçimleri operatöre göre seçilir.
func (g *MySQLGrammar) compileWhereBasic(where WhereClause) (string, []any, error) {
	column, err := g.columnRef(where.Column)
	if err != nil {
		return "", nil, err
	}
	op, err := g.Operator(where.Operator)
	if err != nil {
		return "", nil, err
	}

	switch {
	case validation.IsNullOperator(op) && isNullValue(where.Value):
		return column + " " + op + " NULL", nil, nil

	case op == "IN" || op == "NOT IN":
		list, ok := where.Value.(List)
		if !ok {
			list = List{Items: []Value{where.Value}}
		}
		text, args, err := g.compileValue(list)
		if err != nil {
			return "", nil, err
		}
		return column + " " + op + " " + text, args, nil

	case validation.IsRangeOperator(op):
		list, ok := where.Value.(List)
		if !ok || len(list.Items) != 2 {
			return "", nil, ErrInvalidBetween
		}
		low, lowArgs, err := g.compileValue(list.Items[0])
		if err != nil {
			return "", nil, err
		}
		high, highArgs, err := g.compileValue(list.Items[1])
		if err != nil {
			return "", nil, err
		}
		return column + " " + op + " " + low + " AND " + high, append(lowArgs, highArgs...), nil
	}

	text, args, err := g.compileValue(where.Value)
	if err != nil {
		return "", nil, err
	}
	return column + " " + op + " " + text, args, nil
}

// compileWhereNull, "col IS NULL" kontrolünü oluşturur.
func (g *MySQLGrammar) compileWhereNull(where WhereClause, not bool) (string, []any, error) {
	column, err := g.columnRef(where.Column)
	if err != nil {
		return "", nil, err
	}

	op := "IS NULL"
	if not {
		op = "IS NOT NULL"
	}
	return column + " " + op, nil, nil
}

// compileWhereNested, bir grubu "( a OR b )" biçiminde derler. Boş grup
// boş string döndürür ve üst seviyede atlanır.
func (g *MySQLGrammar) compileWhereNested(where WhereClause) (string, []any, error) {
	if len(where.Nested) == 0 {
		return "", nil, nil
	}

	nestedSQL, args, err := g.compileWheres(where.Nested)
	if err != nil {
		return "", nil, err
	}
	if nestedSQL == "" {
		return "", nil, nil
	}
	return "( " + nestedSQL + " )", args, nil
}

// compileValue, bir Value'yu metne çevirir ve aynı geçişte parametrelerini
// döndürür.
func (g *MySQLGrammar) compileValue(v Value) (string, []any, error) {
	switch x := v.(type) {
	case nil:
		return g.Placeholder(0), []any{nil}, nil
	case Literal:
		return g.Placeholder(0), []any{x.V}, nil
	case Raw:
		return x.SQL, x.Bindings, nil
	case Func:
		if !functionNameRegex.MatchString(x.Name) {
			return "", nil, &CompileError{Message: "invalid function name " + g.QuoteString(x.Name)}
		}
		parts := make([]string, len(x.Args))
		args := make([]any, 0, len(x.Args))
		for i, a := range x.Args {
			text, aArgs, err := g.compileValue(a)
			if err != nil {
				return "", nil, err
			}
			parts[i] = text
			args = append(args, aArgs...)
		}
		return x.Name + "(" + strings.Join(parts, ", ") + ")", args, nil
	case invalidValue:
		return "", nil, x.err
	case List:
		if len(x.Items) == 0 {
			return "", nil, ErrEmptyList
		}
		parts := make([]string, len(x.Items))
		args := make([]any, 0, len(x.Items))
		for i, item := range x.Items {
			text, iArgs, err := g.compileValue(item)
			if err != nil {
				return "", nil, err
			}
			parts[i] = text
			args = append(args, iArgs...)
		}
		return "(" + strings.Join(parts, ", ") + ")", args, nil
	default:
		return "", nil, &CompileError{Message: fmt.Sprintf("unsupported value %T", v)}
	}
}

func isNullValue(v Value) bool {
	if v == nil {
		return true
	}
	lit, ok := v.(Literal)
	return ok && lit.V == nil
}

// PrefixTable, prefix'i tablo adına uygular. "db.users u" gibi referanslarda
// yalnızca tablo bölümü (son nokta sonrası) prefix alır, alias korunur.
func PrefixTable(prefix, table string) string {
	table = strings.TrimSpace(table)
	if prefix == "" || table == "" {
		return table
	}

	name, rest, _ := strings.Cut(table, " ")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i+1] + prefix + name[i+1:]
	} else {
		name = prefix + name
	}
	if rest != "" {
		return name + " " + strings.TrimSpace(rest)
	}
	return name
}
