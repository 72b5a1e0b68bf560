package sqlforge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biyonik/go-sqlforge/dialect"
)

// SelectCommand, SELECT ifadesini kuran komuttur.
//
// Genel kullanım örneği:
//
//	var users []User
//	err := db.Query().Select("id", "name", "email").
//	    From("users").
//	    Where("status", "=", "active").
//	    OrderBy("created_at", "desc").
//	    Limit(10).
//	    Get(ctx, &users)
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type SelectCommand struct {
	command
	conditions[*SelectCommand]

	tables   []string
	columns  []string
	distinct bool
	orders   []dialect.OrderClause

	// Limits
	limit  *int
	offset *int
}

func newSelectCommand(qb *QueryBuilder) *SelectCommand {
	s := &SelectCommand{}
	s.self = s
	s.command = newCommand(qb, "select", func() (string, []any, error) {
		return s.qb.grammar.CompileSelect(s)
	})
	return s
}

// Columns, seçilecek kolonları ekler. COUNT(*) gibi fonksiyon ifadeleri
// tırnaklanmadan yazılır; "expr AS alias" biçimi desteklenir.
func (s *SelectCommand) Columns(columns ...string) *SelectCommand {
	s.columns = append(s.columns, columns...)
	return s
}

// Distinct, sorguyu DISTINCT olarak işaretler.
func (s *SelectCommand) Distinct() *SelectCommand {
	s.distinct = true
	return s
}

// From, sorgulanacak tabloları ekler. Birden fazla tablo virgülle birleştirilir;
// her biri prefix alır ve "users u" biçiminde alias taşıyabilir.
func (s *SelectCommand) From(tables ...string) *SelectCommand {
	s.tables = append(s.tables, tables...)
	return s
}

// OrderBy, ORDER BY ekler. Argümanlar kolon ve isteğe bağlı yön çiftleridir:
//
//	OrderBy("name")                         // `name`
//	OrderBy("name", "asc", "age", "desc")   // `name` ASC, `age` DESC
//	OrderBy("RAND()")                       // RAND()
func (s *SelectCommand) OrderBy(args ...string) *SelectCommand {
	orders, err := parseOrderBy(args)
	s.addErr(err)
	s.orders = append(s.orders, orders...)
	return s
}

// Limit, LIMIT ekler.
func (s *SelectCommand) Limit(n int) *SelectCommand {
	s.limit = boundArg(&s.command, "limit", n)
	return s
}

// Offset, OFFSET ekler. Limit verilmemişse MySQL'in sınırsız LIMIT değeri yazılır.
func (s *SelectCommand) Offset(n int) *SelectCommand {
	s.offset = boundArg(&s.command, "offset", n)
	return s
}

// ForPage, sayfa bazlı limit ve offset belirler. Sayfalar 1'den başlar.
func (s *SelectCommand) ForPage(page, perPage int) *SelectCommand {
	p := NewPagination(page, perPage, 0)
	return s.Limit(p.PerPage).Offset(p.Offset())
}

// ----------------------------------------------------------------------------
// dialect.SelectQuery
// ----------------------------------------------------------------------------

// GetTables, prefix uygulanmış tablo adlarını döndürür.
func (s *SelectCommand) GetTables() []string {
	tables := make([]string, len(s.tables))
	for i, t := range s.tables {
		tables[i] = s.qb.table(t)
	}
	return tables
}

func (s *SelectCommand) GetColumns() []string            { return s.columns }
func (s *SelectCommand) IsDistinct() bool                { return s.distinct }
func (s *SelectCommand) GetOrders() []dialect.OrderClause { return s.orders }
func (s *SelectCommand) GetLimit() *int                  { return s.limit }
func (s *SelectCommand) GetOffset() *int                 { return s.offset }

// ----------------------------------------------------------------------------
// Terminal methods
// ----------------------------------------------------------------------------

// Get, sorguyu çalıştırır ve satırları dest'e (*[]T, *[]*T veya *[]Row) aktarır.
func (s *SelectCommand) Get(ctx context.Context, dest any) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}
	return s.qb.scanner.ScanRows(rows, dest)
}

// First, sorguyu LIMIT 1 ile çalıştırır ve ilk satırı dest'e yazar. Satır
// yoksa ErrNoRows döner. Orijinal komutun limiti değişmez.
func (s *SelectCommand) First(ctx context.Context, dest any) error {
	rows, err := s.clone().Limit(1).rows(ctx)
	if err != nil {
		return err
	}
	return s.qb.scanner.ScanOne(rows, dest)
}

// Each, her satır için fn'i çağırır. fn hata döndürürse iterasyon durur ve
// hata aynen döner.
func (s *SelectCommand) Each(ctx context.Context, fn func(Row) error) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("sqlforge: read columns: %w", err)
	}
	for rows.Next() {
		row, err := scanRow(rows, columns)
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count, aynı koşullarla COUNT(*) çalıştırır. Komutun kendisi değişmez;
// sıralama, limit ve offset sayıma katılmaz.
func (s *SelectCommand) Count(ctx context.Context) (int64, error) {
	c := s.clone()
	c.columns = []string{"COUNT(*)"}
	c.distinct = false
	c.orders = nil
	c.limit, c.offset = nil, nil

	query, err := c.Compile()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.qb.queryRowScan(ctx, "count", query, c.params, &count); err != nil {
		if errors.Is(err, ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Paginate, toplam kayıt sayısını okur ve istenen sayfayı dest'e aktarır.
func (s *SelectCommand) Paginate(ctx context.Context, page, perPage int, dest any) (*Pagination, error) {
	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	p := NewPagination(page, perPage, total)
	if err := s.clone().ForPage(p.Page, p.PerPage).Get(ctx, dest); err != nil {
		return nil, err
	}
	return p, nil
}

// Collect, her satırı fn ile T'ye çevirir. Scanner'ın struct eşlemesi
// yetmediğinde kullanılır.
//
//	names, err := sqlforge.Collect(ctx, qb.Select("name").From("users"),
//	    func(r *sql.Rows) (string, error) {
//	        var n string
//	        return n, r.Scan(&n)
//	    })
func Collect[T any](ctx context.Context, s *SelectCommand, fn func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := fn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlforge: rows iteration: %w", err)
	}
	return out, nil
}

func (s *SelectCommand) rows(ctx context.Context) (*sql.Rows, error) {
	query, err := s.Compile()
	if err != nil {
		return nil, err
	}
	return s.qb.queryContext(ctx, s.name, query, s.params)
}

// clone, komutun bağımsız bir kopyasını oluşturur. Kopya builder'ın aktif
// komutu olmaz.
func (s *SelectCommand) clone() *SelectCommand {
	c := newSelectCommand(s.qb)
	c.err = s.err
	c.tables = append([]string(nil), s.tables...)
	c.columns = append([]string(nil), s.columns...)
	c.distinct = s.distinct
	c.wheres = append([]dialect.WhereClause(nil), s.wheres...)
	c.orders = append([]dialect.OrderClause(nil), s.orders...)
	if s.limit != nil {
		l := *s.limit
		c.limit = &l
	}
	if s.offset != nil {
		o := *s.offset
		c.offset = &o
	}
	return c
}

// parseOrderBy, OrderBy argümanlarını kolon/yön çiftlerine ayırır. Bir
// kolondan sonra gelen "asc"/"desc" o kolonun yönü olarak alınır.
func parseOrderBy(args []string) ([]dialect.OrderClause, error) {
	orders := make([]dialect.OrderClause, 0, len(args))
	for i := 0; i < len(args); i++ {
		col := args[i]
		if _, isDir := dialect.ParseOrderDirection(col); isDir {
			return nil, fmt.Errorf("%w: order direction %q without a column", ErrInvalidArguments, col)
		}

		dir := dialect.OrderNone
		if i+1 < len(args) {
			if d, ok := dialect.ParseOrderDirection(args[i+1]); ok {
				dir = d
				i++
			}
		}

		if dialect.IsRawExpression(col) {
			raw := col
			if dir != dialect.OrderNone {
				raw += " " + string(dir)
			}
			orders = append(orders, dialect.OrderClause{Raw: raw})
			continue
		}
		orders = append(orders, dialect.OrderClause{Column: col, Direction: dir})
	}
	return orders, nil
}
