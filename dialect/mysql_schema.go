package dialect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/biyonik/go-sqlforge/internal/validation"
	"github.com/biyonik/go-sqlforge/schema"
)

// ----------------------------------------------------------------------------
// DDL: CREATE / ALTER / DROP / SHOW
// ----------------------------------------------------------------------------

// renameColumnConstraint, ALTER TABLE ... RENAME COLUMN desteği olan sürümler.
const renameColumnConstraint = ">= 8.0.0"

// defaultKeywords, DEFAULT cümlesinde tırnaksız yazılan anahtar kelimeler.
var defaultKeywords = map[string]bool{
	"NULL":              true,
	"CURRENT_TIMESTAMP": true,
	"CURRENT_DATE":      true,
	"CURRENT_TIME":      true,
	"LOCALTIME":         true,
	"LOCALTIMESTAMP":    true,
}

// optionValueRegex, tırnaksız yazılabilen tablo seçeneği değerleri (DYNAMIC, 1000).
var optionValueRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var referentialActions = map[string]bool{
	schema.ActionRestrict:   true,
	schema.ActionCascade:    true,
	schema.ActionSetNull:    true,
	schema.ActionNoAction:   true,
	schema.ActionSetDefault: true,
}

// FormatDefault, bir kolon varsayılanını DEFAULT cümlesine yazılacak hale getirir.
//
// Sayılar da dahil olmak üzere literal değerler tırnaklı metin olarak yazılır
// (DEFAULT '5'); MySQL bunları kolon tipine dönüştürür.
func (g *MySQLGrammar) FormatDefault(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case schema.Expression:
		return string(x)
	case Raw:
		return x.SQL
	case bool:
		if x {
			return "'1'"
		}
		return "'0'"
	case string:
		trimmed := strings.TrimSpace(x)
		if defaultKeywords[strings.ToUpper(trimmed)] || IsRawExpression(trimmed) {
			return trimmed
		}
		return g.QuoteString(x)
	case []byte:
		return g.QuoteString(string(x))
	case time.Time:
		return g.QuoteString(x.Format("2006-01-02 15:04:05"))
	case float64:
		return g.QuoteString(strconv.FormatFloat(x, 'f', -1, 64))
	case float32:
		return g.QuoteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	default:
		return g.QuoteString(fmt.Sprint(x))
	}
}

// CompileColumn, tek bir kolon tanımını derler:
//
//	`name` TYPE[(params)] [UNSIGNED] [ZEROFILL] [CHARACTER SET x] [COLLATE y]
//	NOT NULL|NULL [DEFAULT v] [AUTO_INCREMENT] [COMMENT 'c']
func (g *MySQLGrammar) CompileColumn(c *schema.Column) (string, error) {
	if c == nil {
		return "", ErrNoColumns
	}
	if err := c.Err(); err != nil {
		return "", err
	}

	name, err := g.wrapSegments(c.TargetName())
	if err != nil {
		return "", err
	}

	parts := []string{name, c.Type.String() + g.typeParams(c)}

	if c.Type.IsNumeric() {
		if c.IsUnsigned() {
			parts = append(parts, "UNSIGNED")
		}
		if c.IsZeroFill() {
			parts = append(parts, "ZEROFILL")
		}
	}
	if cs := c.CharsetName(); cs != "" {
		if err := validation.ValidateIdentifier(cs); err != nil {
			return "", err
		}
		parts = append(parts, "CHARACTER SET "+cs)
	}
	if coll := c.CollationName(); coll != "" {
		if err := validation.ValidateIdentifier(coll); err != nil {
			return "", err
		}
		parts = append(parts, "COLLATE "+coll)
	}

	if c.IsNullable() {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	if c.HasDefault() {
		parts = append(parts, "DEFAULT "+g.FormatDefault(c.DefaultValue()))
	}
	if c.IsAutoIncrement() {
		parts = append(parts, "AUTO_INCREMENT")
	}
	if comment := c.CommentText(); comment != "" {
		parts = append(parts, "COMMENT "+g.QuoteString(comment))
	}

	return strings.Join(parts, " "), nil
}

// typeParams, "(11)", "(8, 2)" veya "('a', 'b')" kısmını üretir.
func (g *MySQLGrammar) typeParams(c *schema.Column) string {
	if len(c.Params) == 0 {
		return ""
	}
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		if s, ok := p.(string); ok {
			params[i] = g.QuoteString(s)
			continue
		}
		params[i] = fmt.Sprint(p)
	}
	return "(" + strings.Join(params, ", ") + ")"
}

// CompileCreate, creating modundaki bir Blueprint'i CREATE TABLE ifadesine çevirir.
//
// Birincil anahtar tanımlanmamışsa ilk AUTO_INCREMENT kolonu birincil anahtar olur.
func (g *MySQLGrammar) CompileCreate(q CreateQuery) (string, error) {
	bp := q.GetBlueprint()
	if bp == nil || bp.TableName() == "" {
		return "", ErrNoTable
	}
	if !bp.Creating() {
		return "", &CompileError{Message: "blueprint for " + bp.TableName() + " is not in creating mode"}
	}
	if err := bp.Err(); err != nil {
		return "", err
	}

	prefix := q.GetPrefix()
	table, err := g.WrapTable(PrefixTable(prefix, bp.TableName()))
	if err != nil {
		return "", err
	}

	var (
		columns    []string
		keys       []string
		options    []string
		hasPrimary bool
		autoColumn string
	)

	for _, cmd := range bp.Commands() {
		switch cmd.Kind {
		case schema.CommandAddColumn:
			def, err := g.CompileColumn(cmd.Column)
			if err != nil {
				return "", err
			}
			columns = append(columns, def)
			if cmd.Column.IsAutoIncrement() && autoColumn == "" {
				autoColumn = cmd.Column.TargetName()
			}
		case schema.CommandPrimary:
			cols, err := g.columnList(cmd.Columns)
			if err != nil {
				return "", err
			}
			keys = append(keys, "PRIMARY KEY "+cols)
			hasPrimary = true
		case schema.CommandIndex, schema.CommandUnique:
			def, err := g.compileIndex(cmd)
			if err != nil {
				return "", err
			}
			keys = append(keys, def)
		case schema.CommandForeign:
			def, err := g.compileForeign(cmd.Foreign, prefix)
			if err != nil {
				return "", err
			}
			keys = append(keys, def)
		case schema.CommandEngine, schema.CommandCharset, schema.CommandCollate,
			schema.CommandComment, schema.CommandOption:
			opt, err := g.compileTableOption(cmd, "=")
			if err != nil {
				return "", err
			}
			if cmd.Kind == schema.CommandCharset {
				opt = "DEFAULT " + opt
			}
			options = append(options, opt)
		default:
			return "", &CompileError{Message: "operation not allowed in CREATE TABLE " + bp.TableName()}
		}
	}

	if len(columns) == 0 {
		return "", ErrNoColumns
	}
	if !hasPrimary && autoColumn != "" {
		pk, err := g.columnList([]string{autoColumn})
		if err != nil {
			return "", err
		}
		keys = append([]string{"PRIMARY KEY " + pk}, keys...)
	}

	var sql strings.Builder
	sql.WriteString("CREATE TABLE ")
	if q.IsIfNotExists() {
		sql.WriteString("IF NOT EXISTS ")
	}
	sql.WriteString(table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(append(columns, keys...), ", "))
	sql.WriteString(")")
	for _, opt := range options {
		sql.WriteString(" ")
		sql.WriteString(opt)
	}
	sql.WriteString(";")
	return sql.String(), nil
}

// CompileAlter, bir Blueprint'i ALTER TABLE ifadesine çevirir. Tüm işlemler
// tek ifadede virgülle birleştirilir.
func (g *MySQLGrammar) CompileAlter(q AlterQuery) (string, error) {
	bp := q.GetBlueprint()
	if bp == nil || bp.TableName() == "" {
		return "", ErrNoTable
	}
	if bp.Creating() {
		return "", &CompileError{Message: "blueprint for " + bp.TableName() + " is in creating mode"}
	}
	if err := bp.Err(); err != nil {
		return "", err
	}

	prefix := q.GetPrefix()
	table, err := g.WrapTable(PrefixTable(prefix, bp.TableName()))
	if err != nil {
		return "", err
	}

	specs := make([]string, 0, len(bp.Commands()))
	for _, cmd := range bp.Commands() {
		spec, err := g.compileAlterSpec(cmd, prefix)
		if err != nil {
			return "", err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return "", ErrNoChanges
	}

	return "ALTER TABLE " + table + " " + strings.Join(specs, ", ") + ";", nil
}

func (g *MySQLGrammar) compileAlterSpec(cmd schema.Command, prefix string) (string, error) {
	switch cmd.Kind {
	case schema.CommandAddColumn, schema.CommandModifyColumn:
		def, err := g.CompileColumn(cmd.Column)
		if err != nil {
			return "", err
		}
		pos, err := g.placement(cmd.Column)
		if err != nil {
			return "", err
		}
		verb := "ADD "
		if cmd.Kind == schema.CommandModifyColumn {
			verb = "MODIFY "
		}
		return verb + def + pos, nil

	case schema.CommandChangeColumn:
		from, err := g.wrapSegments(cmd.From)
		if err != nil {
			return "", err
		}
		def, err := g.CompileColumn(cmd.Column)
		if err != nil {
			return "", err
		}
		pos, err := g.placement(cmd.Column)
		if err != nil {
			return "", err
		}
		return "CHANGE " + from + " " + def + pos, nil

	case schema.CommandDropColumn:
		col, err := g.wrapSegments(cmd.Name)
		if err != nil {
			return "", err
		}
		return "DROP " + col, nil

	case schema.CommandRenameColumn:
		if !g.supports(renameColumnConstraint) {
			return "", fmt.Errorf("%w: RENAME COLUMN requires MySQL 8.0 or later (server %s)",
				ErrUnsupported, g.ServerVersion())
		}
		from, err := g.wrapSegments(cmd.From)
		if err != nil {
			return "", err
		}
		to, err := g.wrapSegments(cmd.Name)
		if err != nil {
			return "", err
		}
		return "RENAME COLUMN " + from + " TO " + to, nil

	case schema.CommandPrimary:
		cols, err := g.columnList(cmd.Columns)
		if err != nil {
			return "", err
		}
		return "ADD PRIMARY KEY " + cols, nil

	case schema.CommandDropPrimary:
		return "DROP PRIMARY KEY", nil

	case schema.CommandIndex, schema.CommandUnique:
		def, err := g.compileIndex(cmd)
		if err != nil {
			return "", err
		}
		return "ADD " + def, nil

	case schema.CommandDropIndex:
		name, err := g.wrapSegments(cmd.Name)
		if err != nil {
			return "", err
		}
		return "DROP INDEX " + name, nil

	case schema.CommandForeign:
		def, err := g.compileForeign(cmd.Foreign, prefix)
		if err != nil {
			return "", err
		}
		return "ADD " + def, nil

	case schema.CommandDropForeign:
		name, err := g.wrapSegments(cmd.Name)
		if err != nil {
			return "", err
		}
		return "DROP FOREIGN KEY " + name, nil

	case schema.CommandRename:
		to, err := g.WrapTable(PrefixTable(prefix, cmd.Name))
		if err != nil {
			return "", err
		}
		return "RENAME " + to, nil

	case schema.CommandEngine, schema.CommandCharset, schema.CommandCollate,
		schema.CommandComment, schema.CommandOption:
		return g.compileTableOption(cmd, " = ")
	}

	return "", &CompileError{Message: fmt.Sprintf("unknown blueprint command %d", cmd.Kind)}
}

func (g *MySQLGrammar) placement(c *schema.Column) (string, error) {
	p := c.GetPlacement()
	switch {
	case p.First:
		return " FIRST", nil
	case p.After != "":
		after, err := g.wrapSegments(p.After)
		if err != nil {
			return "", err
		}
		return " AFTER " + after, nil
	}
	return "", nil
}

// columnList, "(`a`, `b`)" listesini üretir.
func (g *MySQLGrammar) columnList(columns []string) (string, error) {
	if len(columns) == 0 {
		return "", ErrNoColumns
	}
	wrapped := make([]string, len(columns))
	for i, col := range columns {
		w, err := g.wrapSegments(col)
		if err != nil {
			return "", err
		}
		wrapped[i] = w
	}
	return "(" + strings.Join(wrapped, ", ") + ")", nil
}

func (g *MySQLGrammar) compileIndex(cmd schema.Command) (string, error) {
	name, err := g.wrapSegments(cmd.Name)
	if err != nil {
		return "", err
	}
	cols, err := g.columnList(cmd.Columns)
	if err != nil {
		return "", err
	}
	kind := "INDEX "
	if cmd.Kind == schema.CommandUnique {
		kind = "UNIQUE INDEX "
	}
	return kind + name + " " + cols, nil
}

// compileForeign, "FOREIGN KEY `name` (cols) REFERENCES `table` (cols)
// ON DELETE x ON UPDATE y" parçasını üretir. Referans tablo da prefix alır.
func (g *MySQLGrammar) compileForeign(fk *schema.ForeignKey, prefix string) (string, error) {
	if fk == nil || fk.Table == "" || len(fk.RefColumns) == 0 {
		return "", &CompileError{Message: "foreign key needs a referenced table and columns"}
	}
	name, err := g.wrapSegments(fk.Name)
	if err != nil {
		return "", err
	}
	cols, err := g.columnList(fk.Columns)
	if err != nil {
		return "", err
	}
	refTable, err := g.WrapTable(PrefixTable(prefix, fk.Table))
	if err != nil {
		return "", err
	}
	refCols, err := g.columnList(fk.RefColumns)
	if err != nil {
		return "", err
	}
	for _, action := range []string{fk.OnDelete, fk.OnUpdate} {
		if !referentialActions[action] {
			return "", &CompileError{Message: "invalid referential action " + g.QuoteString(action)}
		}
	}

	return "FOREIGN KEY " + name + " " + cols + " REFERENCES " + refTable + " " + refCols +
		" ON DELETE " + fk.OnDelete + " ON UPDATE " + fk.OnUpdate, nil
}

// compileTableOption, ENGINE, CHARACTER SET, COLLATE, COMMENT ve serbest
// seçenekleri verilen ayraçla ("=" veya " = ") yazar.
func (g *MySQLGrammar) compileTableOption(cmd schema.Command, sep string) (string, error) {
	switch cmd.Kind {
	case schema.CommandComment:
		return "COMMENT" + sep + g.QuoteString(cmd.Value), nil
	case schema.CommandOption:
		if err := validation.ValidateIdentifier(cmd.Name); err != nil {
			return "", err
		}
		value := cmd.Value
		if !optionValueRegex.MatchString(value) {
			value = g.QuoteString(value)
		}
		return cmd.Name + sep + value, nil
	}

	if err := validation.ValidateIdentifier(cmd.Value); err != nil {
		return "", err
	}
	switch cmd.Kind {
	case schema.CommandEngine:
		return "ENGINE" + sep + cmd.Value, nil
	case schema.CommandCharset:
		return "CHARACTER SET" + sep + cmd.Value, nil
	default:
		return "COLLATE" + sep + cmd.Value, nil
	}
}

// CompileDrop, DROP TABLE veya DROP DATABASE ifadesi üretir. Birden fazla
// tablo virgülle birleştirilir. Tablo adları prefix uygulanmış olarak gelir.
func (g *MySQLGrammar) CompileDrop(q DropQuery) (string, error) {
	names := q.GetNames()
	if len(names) == 0 {
		return "", ErrNoTable
	}
	if q.GetTarget() == DropDatabase && len(names) > 1 {
		return "", &CompileError{Message: "DROP DATABASE accepts a single database"}
	}

	wrapped := make([]string, len(names))
	for i, n := range names {
		w, err := g.wrapSegments(n)
		if err != nil {
			return "", err
		}
		wrapped[i] = w
	}

	var sql strings.Builder
	sql.WriteString("DROP ")
	if q.GetTarget() == DropDatabase {
		sql.WriteString("DATABASE ")
	} else {
		sql.WriteString("TABLE ")
	}
	if q.IsIfExists() {
		sql.WriteString("IF EXISTS ")
	}
	sql.WriteString(strings.Join(wrapped, ", "))
	sql.WriteString(";")
	return sql.String(), nil
}

// CompileShow, sabit biçimli SHOW ifadelerini üretir. LIKE kalıbı parametre
// yerine tırnaklı literal olarak yazılır.
func (g *MySQLGrammar) CompileShow(q ShowQuery) (string, error) {
	var sql strings.Builder

	switch q.GetKind() {
	case ShowTables:
		sql.WriteString("SHOW TABLES")
	case ShowDatabases:
		sql.WriteString("SHOW DATABASES")
	case ShowTableStatus:
		sql.WriteString("SHOW TABLE STATUS")
	case ShowColumns, ShowCreateTable:
		if q.GetTable() == "" {
			return "", ErrNoTable
		}
		table, err := g.wrapSegments(q.GetTable())
		if err != nil {
			return "", err
		}
		if q.GetKind() == ShowCreateTable {
			return "SHOW CREATE TABLE " + table + ";", nil
		}
		sql.WriteString("SHOW COLUMNS FROM ")
		sql.WriteString(table)
	default:
		return "", &CompileError{Message: fmt.Sprintf("unknown show kind %d", q.GetKind())}
	}

	if like := q.GetLike(); like != "" {
		sql.WriteString(" LIKE ")
		sql.WriteString(g.QuoteString(like))
	}
	sql.WriteString(";")
	return sql.String(), nil
}
