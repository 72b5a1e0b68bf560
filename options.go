package sqlforge

import "github.com/biyonik/go-sqlforge/dialect"

// -----------------------------------------------------------------------------
//  Bu dosya, sqlforge'un yapılandırma katmanını oluşturan Option fonksiyonlarını
//  içerir. Her With* fonksiyonu DB (ve ondan türeyen QueryBuilder) üzerinde tek
//  bir davranışı değiştirir.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option, bir *DB* örneği üzerinde çalışan yapılandırma fonksiyonudur. New ile
// oluşturulan bağlantısız builder'lar da aynı Option'ları kabul eder.
type Option func(*DB)

// WithGrammar, derleme aşamasında kullanılacak SQL gramerini değiştirir.
// Varsayılan dialect.MySQL() olur.
//
//	db := sqlforge.NewDB(sqlDB, sqlforge.WithGrammar(dialect.MySQL(dialect.WithServerVersion("5.7.40"))))
func WithGrammar(g dialect.Grammar) Option {
	return func(d *DB) {
		d.grammar = g
	}
}

// WithScanner, SELECT sonuçlarını hedef tiplere aktaran tarayıcıyı değiştirir.
func WithScanner(s Scanner) Option {
	return func(d *DB) {
		d.scanner = s
	}
}

// WithDebug, debug modunu açar. Açıkken başarılı sorgular da loglanır;
// hatalı sorgular her zaman loglanır.
func WithDebug(enabled bool) Option {
	return func(d *DB) {
		d.debug = enabled
	}
}

// WithLogger, özel bir logger tanımlar.
//
//	db := sqlforge.NewDB(sqlDB,
//	    sqlforge.WithDebug(true),
//	    sqlforge.WithLogger(sqlforge.NewSlogLogger(slog.Default())),
//	)
func WithLogger(logger Logger) Option {
	return func(d *DB) {
		d.logger = logger
	}
}

// WithTablePrefix, tüm tablo adlarına otomatik olarak prefix ekler.
//
//	qb := sqlforge.New(sqlforge.WithTablePrefix("app_"))
//	qb.Select().From("users") // `app_users`
func WithTablePrefix(prefix string) Option {
	return func(d *DB) {
		d.prefix = prefix
	}
}

// applyOptions, nil olmayan her Option'ı sırayla uygular ve eksik
// bileşenlere varsayılanlarını atar.
func applyOptions(d *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.grammar == nil {
		d.grammar = dialect.MySQL()
	}
	if d.scanner == nil {
		d.scanner = NewDefaultScanner()
	}
	if d.logger == nil {
		d.logger = NopLogger{}
	}
}
