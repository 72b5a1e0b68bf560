package sqlforge

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/biyonik/go-sqlforge/dialect"
)

/*
=======================================================================================================================
  SQLFORGE – Executor Sınırı

  Derleyici yalnızca SQL metni ve parametre listesi üretir. Bu dosya, o çıktının sürücüye
  teslim edildiği tek noktadır: sorgular burada çalıştırılır, süreleri ölçülür ve loglanır,
  sürücü hataları DatabaseError ile sarılır.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// QueryExecutor, hem *sql.DB hem *sql.Tx yapılarının ortak olarak sağladığı
// temel veritabanı fonksiyonlarını soyutlar.
type QueryExecutor interface {
	// ExecContext, INSERT/UPDATE/DELETE ve DDL gibi satır döndürmeyen komutlar içindir.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)

	// QueryContext, satır döndüren SELECT ve SHOW sorguları içindir.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRowContext, tek satır beklenen sorgularda kullanılır.
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time kontrolü: *sql.DB ve *sql.Tx gerçekten QueryExecutor'ı implement ediyor mu?
var (
	_ QueryExecutor = (*sql.DB)(nil)
	_ QueryExecutor = (*sql.Tx)(nil)
)

// DB, veritabanı bağlantısını sarar ve üzerine grammar, scanner, logger ve
// prefix ayarlarını ekler. Her sorgu Query() ile yeni bir QueryBuilder alır.
type DB struct {
	*sql.DB
	grammar dialect.Grammar
	scanner Scanner
	logger  Logger
	debug   bool
	prefix  string
}

// NewDB, var olan bir *sql.DB için DB sarmalayıcısı oluşturur.
func NewDB(db *sql.DB, opts ...Option) *DB {
	d := &DB{DB: db}
	applyOptions(d, opts)
	return d
}

// Grammar, aktif SQL gramerini döndürür.
func (d *DB) Grammar() dialect.Grammar {
	return d.grammar
}

// Scanner, satır tarama mekanizmasını döndürür.
func (d *DB) Scanner() Scanner {
	return d.scanner
}

// Logger, sorgu logger'ını döndürür.
func (d *DB) Logger() Logger {
	return d.logger
}

// TablePrefix, tablo adlarının başına eklenen prefix'i döndürür.
func (d *DB) TablePrefix() string {
	return d.prefix
}

// IsDebug, başarılı sorguların da loglanıp loglanmadığını bildirir.
func (d *DB) IsDebug() bool {
	return d.debug
}

// Query, bu bağlantıya bağlı yeni bir QueryBuilder döndürür.
func (d *DB) Query() *QueryBuilder {
	return d.On(d.DB)
}

// On, komutları verilen executor üzerinde (örn. çağıranın açtığı bir *sql.Tx)
// çalıştıran bir QueryBuilder döndürür. Transaction yaşam döngüsü çağırana aittir.
func (d *DB) On(exec QueryExecutor) *QueryBuilder {
	return &QueryBuilder{
		prefix:   d.prefix,
		grammar:  d.grammar,
		executor: exec,
		scanner:  d.scanner,
		logger:   d.logger,
		debug:    d.debug,
	}
}

// DetectServerVersion, SELECT VERSION() ile sunucu sürümünü okur. Grammar
// MySQL grameri ise sürüm ona da kaydedilir; böylece RENAME COLUMN gibi
// sürüme bağlı ifadeler doğru kapıdan geçer.
func (d *DB) DetectServerVersion(ctx context.Context) (string, error) {
	const query = "SELECT VERSION();"
	qb := d.Query()

	var v string
	start := time.Now()
	err := d.DB.QueryRowContext(ctx, query).Scan(&v)
	qb.log(query, nil, start, err)
	if err != nil {
		return "", NewDatabaseError("server version", query, nil, err)
	}

	if g, ok := d.grammar.(*dialect.MySQLGrammar); ok {
		if err := g.SetServerVersion(v); err != nil {
			return v, err
		}
	}
	return v, nil
}

// Close, veritabanı bağlantısını kapatır.
func (d *DB) Close() error {
	return d.DB.Close()
}

// Ping, bağlantının canlı olup olmadığını kontrol eder.
func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// ----------------------------------------------------------------------------
// QueryBuilder executor helpers
// ----------------------------------------------------------------------------

func (qb *QueryBuilder) log(query string, args []any, start time.Time, err error) {
	if qb.logger == nil {
		return
	}
	if err != nil || qb.debug {
		qb.logger.Log(query, args, time.Since(start), err)
	}
}

func (qb *QueryBuilder) execContext(ctx context.Context, op, query string, args []any) (*QueryResult, error) {
	if qb.executor == nil {
		return nil, ErrNoExecutor
	}
	start := time.Now()
	res, err := qb.executor.ExecContext(ctx, query, args...)
	qb.log(query, args, start, err)
	if err != nil {
		return nil, NewDatabaseError(op, query, args, err)
	}
	return NewQueryResult(res), nil
}

func (qb *QueryBuilder) queryContext(ctx context.Context, op, query string, args []any) (*sql.Rows, error) {
	if qb.executor == nil {
		return nil, ErrNoExecutor
	}
	start := time.Now()
	rows, err := qb.executor.QueryContext(ctx, query, args...)
	qb.log(query, args, start, err)
	if err != nil {
		return nil, NewDatabaseError(op, query, args, err)
	}
	return rows, nil
}

func (qb *QueryBuilder) queryRowScan(ctx context.Context, op, query string, args []any, dest ...any) error {
	if qb.executor == nil {
		return ErrNoExecutor
	}
	start := time.Now()
	err := qb.executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		qb.log(query, args, start, nil)
		return ErrNoRows
	}
	qb.log(query, args, start, err)
	if err != nil {
		return NewDatabaseError(op, query, args, err)
	}
	return nil
}
