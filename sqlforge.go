// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com

package sqlforge

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"

	"github.com/biyonik/go-sqlforge/dialect"
)

// Version, go-sqlforge kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// Connect, verilen DSN ile MySQL bağlantısı açar, bağlantıyı doğrular ve DB
// örneğini döndürür.
//
// Örnek:
//
//	db, err := sqlforge.Connect(ctx, "user:pass@tcp(localhost:3306)/dbname?parseTime=true")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func Connect(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, NewDatabaseError("connect", "", nil, err)
	}
	return open(ctx, sqlDB, opts)
}

// ConnectWithConfig, Config yapısından bağlantı kurar ve havuz ayarlarını
// uygular. cfg.Prefix verilmişse tablo prefix'i olarak kullanılır; opts
// içindeki WithTablePrefix bunu ezer.
//
// Örnek:
//
//	cfg := sqlforge.DefaultConfig()
//	cfg.Database = "mydb"
//	cfg.Username = "user"
//	cfg.Password = "pass"
//	db, err := sqlforge.ConnectWithConfig(ctx, cfg)
func ConnectWithConfig(ctx context.Context, cfg *Config, opts ...Option) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	connector, err := mysql.NewConnector(cfg.MySQLConfig())
	if err != nil {
		return nil, NewDatabaseError("connect", "", nil, err)
	}
	sqlDB := sql.OpenDB(connector)

	// Bağlantı havuz ayarlarını uygula
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	if cfg.ConnMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	}

	if cfg.Prefix != "" {
		opts = append([]Option{WithTablePrefix(cfg.Prefix)}, opts...)
	}
	return open(ctx, sqlDB, opts)
}

func open(ctx context.Context, sqlDB *sql.DB, opts []Option) (*DB, error) {
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, NewDatabaseError("ping", "", nil, err)
	}
	return NewDB(sqlDB, opts...), nil
}

// New, veritabanı bağlantısı olmayan bir QueryBuilder oluşturur. SQL metni
// üretmek için kullanılır; Exec ve okuma metodları ErrNoExecutor döndürür.
//
// Örnek:
//
//	sql, args, err := sqlforge.New().Select("id", "name").
//	    From("users").
//	    Where("status", "=", "active").
//	    ToSQL()
func New(opts ...Option) *QueryBuilder {
	d := &DB{}
	applyOptions(d, opts)
	return d.On(nil)
}

// Raw, SQL metnine aynen gömülen bir ifade oluşturur. Bindings, ifadedeki
// "?" yer tutucularının değerleridir.
// Sadece güvenli ve kontrol edilen girdi için kullanın.
//
//	qb.Update().Table("posts").Set("views", sqlforge.Raw("views + ?", 1))
func Raw(sql string, bindings ...any) dialect.Raw {
	return dialect.RawSQL(sql, bindings...)
}

// Func, NAME(args...) fonksiyon çağrısı oluşturur. Argümanlar parametre olarak bağlanır.
//
//	qb.Insert().Into("events").Set("at", sqlforge.Func("FROM_UNIXTIME", ts))
func Func(name string, args ...any) dialect.Func {
	return dialect.Fn(name, args...)
}

// Literal, v'yi her durumda parametre olarak bağlar; "NOW()" gibi görünen
// kullanıcı girdileri için kullanılmalıdır.
func Literal(v any) dialect.Literal {
	return dialect.Lit(v)
}
