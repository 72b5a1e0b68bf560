package sqlforge

import (
	"context"
	"errors"
	"fmt"
)

// Command, QueryBuilder'ın seçebildiği her SQL komutunun ortak sözleşmesidir.
type Command interface {
	// Name, komutun adını döndürür ("select", "alter", ...).
	Name() string

	// Compile, komutu SQL metnine çevirir. Saf ve tekrarlanabilirdir; aynı
	// durum için her çağrı aynı metni üretir.
	Compile() (string, error)

	// Parameters, son Compile çağrısının parametrelerini döndürür. Compile
	// hiç çağrılmamışsa örtük olarak derler.
	Parameters() []any

	// Exec, komutu derleyip executor üzerinde çalıştırır.
	Exec(ctx context.Context) (*QueryResult, error)
}

// command, tüm komutların paylaştığı durumdur: bağlı builder, akıcı
// çağrılarda biriken hatalar ve son derlemenin parametreleri.
type command struct {
	qb   *QueryBuilder
	name string
	err  error

	build    func() (string, []any, error)
	params   []any
	compiled bool
}

func newCommand(qb *QueryBuilder, name string, build func() (string, []any, error)) command {
	return command{qb: qb, name: name, build: build}
}

// Name, komutun adını döndürür.
func (c *command) Name() string {
	return c.name
}

// Err, akıcı çağrılarda biriken hataları döndürür.
func (c *command) Err() error {
	return c.err
}

func (c *command) addErr(err error) {
	if err != nil {
		c.err = errors.Join(c.err, err)
	}
}

// Compile, birikmiş hata yoksa komutu derler ve parametreleri saklar.
func (c *command) Compile() (string, error) {
	c.params, c.compiled = nil, false
	if c.err != nil {
		return "", c.err
	}
	sql, args, err := c.build()
	if err != nil {
		return "", err
	}
	if args == nil {
		args = []any{}
	}
	c.params = args
	c.compiled = true
	return sql, nil
}

// Parameters, son derlemenin parametrelerini döndürür.
func (c *command) Parameters() []any {
	if !c.compiled {
		if _, err := c.Compile(); err != nil {
			return nil
		}
	}
	return c.params
}

// ToSQL, SQL metnini, parametreleri ve hatayı birlikte döndürür.
func (c *command) ToSQL() (string, []any, error) {
	sql, err := c.Compile()
	if err != nil {
		return "", nil, err
	}
	return sql, c.params, nil
}

// Exec, komutu çalıştırır. Satır döndüren komutlar için sonuç satırları
// okunmaz; bunun yerine Get, Each veya Rows kullanılmalıdır.
func (c *command) Exec(ctx context.Context) (*QueryResult, error) {
	sql, err := c.Compile()
	if err != nil {
		return nil, err
	}
	return c.qb.execContext(ctx, c.name, sql, c.params)
}

// boundArg, LIMIT/OFFSET değerini doğrular. Negatif değer komuta hata kaydeder.
func boundArg(c *command, op string, n int) *int {
	if n < 0 {
		c.addErr(fmt.Errorf("%w: %s must not be negative", ErrInvalidArguments, op))
		return nil
	}
	return &n
}
