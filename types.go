package sqlforge

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

/*
 * ----------------------------------------------------------------------------
 * SQLFORGE TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, sqlforge paketinin veri taşıma ve yapılandırma katmanını oluşturur:
 * çalıştırma sonuçları, sayfalama, bağlantı yapılandırması ve logger.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Query Result Types
// ----------------------------------------------------------------------------

// QueryResult, bir INSERT, UPDATE, DELETE veya DDL işlemi sonucunda
// veritabanından dönen ham yanıtı sarmalar.
type QueryResult struct {
	result sql.Result
}

// NewQueryResult, ham `sql.Result` nesnesinden bir sonuç nesnesi türetir.
func NewQueryResult(result sql.Result) *QueryResult {
	return &QueryResult{result: result}
}

// LastInsertID, AUTO_INCREMENT tablolarda son eklenen kaydın kimliğini döndürür.
func (r *QueryResult) LastInsertID() (int64, error) {
	if r == nil || r.result == nil {
		return 0, ErrNoRows
	}
	return r.result.LastInsertId()
}

// RowsAffected, çalıştırılan sorgudan kaç satırın etkilendiğini bildirir.
func (r *QueryResult) RowsAffected() (int64, error) {
	if r == nil || r.result == nil {
		return 0, ErrNoRows
	}
	return r.result.RowsAffected()
}

// Row, kolon adından değere tek bir sonuç satırıdır. Each ve SHOW sonuçları
// bu biçimde döner.
type Row map[string]any

// String, kolonu metin olarak döndürür; []byte değerleri dönüştürülür.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// ----------------------------------------------------------------------------
// Pagination Types
// ----------------------------------------------------------------------------

// Pagination, listeleme işlemlerinde sayfalama meta verisini taşır.
type Pagination struct {
	Page       int   // Mevcut sayfa numarası (1'den başlar)
	PerPage    int   // Sayfa başına kayıt sayısı
	Total      int64 // Toplam kayıt sayısı
	TotalPages int   // Hesaplanan toplam sayfa sayısı
	HasMore    bool  // Sonraki sayfa var mı
}

// NewPagination, ham sayfalama parametrelerinden bir Pagination oluşturur.
// Geçersiz değerler varsayılanlara çekilir (sayfa 1, sayfa başına 15).
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Offset, sayfanın başlangıç noktasını hesaplar: (Page - 1) * PerPage.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev, mevcut sayfadan geriye gidilip gidilemeyeceğini bildirir.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext, sonraki sayfa olup olmadığını bildirir.
func (p *Pagination) HasNext() bool {
	return p.HasMore
}

// ----------------------------------------------------------------------------
// Configuration Types
// ----------------------------------------------------------------------------

// Config, MySQL bağlantısının adres, kimlik, havuz ve zaman aşımı ayarlarını taşır.
type Config struct {
	Host         string
	Port         int
	Database     string
	Username     string
	Password     string
	Charset      string // varsayılan: utf8mb4
	Collation    string // varsayılan: utf8mb4_unicode_ci
	Prefix       string // tablo adlarının önüne eklenecek önek
	MaxOpenConns int
	MaxIdleConns int
	ConnMaxLife  time.Duration
	ConnMaxIdle  time.Duration
	TLS          bool
	Timeout      time.Duration // bağlantı kurma zaman aşımı
}

// DefaultConfig, üretim ortamına uygun varsayılan ayarları döndürür.
func DefaultConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         3306,
		Charset:      "utf8mb4",
		Collation:    "utf8mb4_unicode_ci",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
		Timeout:      10 * time.Second,
	}
}

// MySQLConfig, ayarları sürücünün kendi yapılandırma tipine çevirir.
func (c *Config) MySQLConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"

	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port <= 0 {
		port = 3306
	}
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.DBName = c.Database

	// Tarih/Saat alanlarının time.Time tipine dönüşümü için gerekli
	mc.ParseTime = true
	if c.Charset != "" {
		mc.Params = map[string]string{"charset": c.Charset}
	}
	if c.Collation != "" {
		mc.Collation = c.Collation
	}
	if c.TLS {
		mc.TLSConfig = "true"
	}
	if c.Timeout > 0 {
		mc.Timeout = c.Timeout
	}
	return mc
}

// DSN, sürücünün anlayacağı bağlantı dizesini üretir:
// user:pass@tcp(host:port)/db?charset=...&collation=...&parseTime=true
func (c *Config) DSN() string {
	return c.MySQLConfig().FormatDSN()
}

// ----------------------------------------------------------------------------
// Logger Interface
// ----------------------------------------------------------------------------

// Logger, çalıştırılan SQL sorgularını, parametreleri, süreyi ve olası
// hataları izlemek için kullanılan arayüzdür. Yalnızca executor sınırında çağrılır.
type Logger interface {
	Log(query string, args []any, duration time.Duration, err error)
}

// NopLogger, tüm logları yutan varsayılan logger'dır.
type NopLogger struct{}

// Log, NopLogger'ın implementasyonudur. Gelen tüm veriyi yok sayar.
func (NopLogger) Log(string, []any, time.Duration, error) {}

// SlogLogger, Logger arayüzünü log/slog üzerine uyarlar. Başarılı sorgular
// Debug, hatalı sorgular Error seviyesinde yazılır.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger, l üzerinden log yazan bir Logger döndürür. l nil ise
// slog.Default() kullanılır.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Log, sorguyu yapılandırılmış alanlarla yazar.
func (s *SlogLogger) Log(query string, args []any, duration time.Duration, err error) {
	attrs := []slog.Attr{
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
		s.logger.LogAttrs(context.Background(), slog.LevelError, "sqlforge: query failed", attrs...)
		return
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "sqlforge: query", attrs...)
}
