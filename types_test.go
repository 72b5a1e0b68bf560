package sqlforge

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		total   int64
		want    Pagination
		offset  int
	}{
		{"first page", 1, 10, 95, Pagination{Page: 1, PerPage: 10, Total: 95, TotalPages: 10, HasMore: true}, 0},
		{"last page", 10, 10, 95, Pagination{Page: 10, PerPage: 10, Total: 95, TotalPages: 10, HasMore: false}, 90},
		{"exact fit", 2, 5, 10, Pagination{Page: 2, PerPage: 5, Total: 10, TotalPages: 2, HasMore: false}, 5},
		{"empty", 1, 10, 0, Pagination{Page: 1, PerPage: 10, Total: 0, TotalPages: 0, HasMore: false}, 0},
		{"defaults", 0, 0, 30, Pagination{Page: 1, PerPage: 15, Total: 30, TotalPages: 2, HasMore: true}, 0},
		{"negative page", -3, 20, 100, Pagination{Page: 1, PerPage: 20, Total: 100, TotalPages: 5, HasMore: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.want, *p)
			assert.Equal(t, tt.offset, p.Offset())
			assert.Equal(t, tt.want.HasMore, p.HasNext())
			assert.Equal(t, tt.want.Page > 1, p.HasPrev())
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db.internal"
	cfg.Port = 3307
	cfg.Database = "app"
	cfg.Username = "root"
	cfg.Password = "secret"

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "root:secret@tcp(db.internal:3307)/app?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "collation=utf8mb4_unicode_ci")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "app", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 10*time.Second, parsed.Timeout)
}

func TestConfig_MySQLConfigDefaults(t *testing.T) {
	mc := (&Config{}).MySQLConfig()
	assert.Equal(t, "tcp", mc.Net)
	assert.Equal(t, "localhost:3306", mc.Addr)
	assert.True(t, mc.ParseTime)
	assert.Empty(t, mc.TLSConfig)

	mc = (&Config{Host: "::1", Port: 3310, TLS: true}).MySQLConfig()
	assert.Equal(t, "[::1]:3310", mc.Addr)
	assert.Equal(t, "true", mc.TLSConfig)
}

func TestRow_String(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	row := Row{
		"bytes": []byte("hello"),
		"str":   "world",
		"int":   int64(42),
		"time":  at,
		"nil":   nil,
	}

	assert.Equal(t, "hello", row.String("bytes"))
	assert.Equal(t, "world", row.String("str"))
	assert.Equal(t, "42", row.String("int"))
	assert.Equal(t, "2024-05-06 07:08:09", row.String("time"))
	assert.Equal(t, "", row.String("nil"))
	assert.Equal(t, "", row.String("missing"))
}

func TestQueryResult_Nil(t *testing.T) {
	var r *QueryResult
	_, err := r.LastInsertID()
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = NewQueryResult(nil).RowsAffected()
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestErrors(t *testing.T) {
	t.Run("usage error", func(t *testing.T) {
		assert.Equal(t, "sqlforge: no command selected", ErrNoCommand.Error())
		assert.Equal(t, "sqlforge: select: bad", newUsageError("select", "bad").Error())
		assert.ErrorIs(t, fmt.Errorf("%w: x", ErrUnknownCommand), ErrBuilderUsage)
		assert.NotErrorIs(t, ErrNoCommand, ErrDatabase)
	})

	t.Run("database error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewDatabaseError("ping", "", nil, cause)
		assert.Equal(t, "sqlforge: ping: connection refused", err.Error())
		assert.ErrorIs(t, err, ErrDatabase)
		assert.ErrorIs(t, err, cause)
		assert.Zero(t, err.Number)
		assert.False(t, IsDuplicateEntry(err))
	})

	t.Run("duplicate entry", func(t *testing.T) {
		assert.True(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1062}))
		assert.True(t, IsDuplicateEntry(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1062})))
		assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1146}))
		assert.False(t, IsDuplicateEntry(nil))

		err := NewDatabaseError("insert", "INSERT ...", nil, &mysql.MySQLError{Number: 1062})
		assert.Equal(t, uint16(1062), err.Number)
		assert.True(t, IsDuplicateEntry(err))
	})

	t.Run("re-exported sentinels", func(t *testing.T) {
		_, err := New().Select().From("bad table name!").Compile()
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})
}

func TestNew_Defaults(t *testing.T) {
	qb := New()
	assert.Equal(t, "", qb.Prefix())
	assert.Equal(t, "mysql", qb.Grammar().Name())
	assert.NoError(t, qb.Err())
}
