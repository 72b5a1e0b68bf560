package sqlforge

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-sqlforge/dialect"
	"github.com/biyonik/go-sqlforge/internal/sqltest"
	"github.com/biyonik/go-sqlforge/schema"
)

type testUser struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Email   string
	Ignored string `db:"-"`
}

func usersRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "extra"}).
		AddRow(int64(1), "Ali", []byte("ali@example.com"), "x").
		AddRow(int64(2), []byte("Veli"), "veli@example.com", nil)
}

func TestDB_Exec(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB, WithTablePrefix("p_"))
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO `p_users` (`name`, `age`) VALUES (?, ?);").
		WithArgs("Ali", 30).
		WillReturnResult(sqlmock.NewResult(41, 1))

	res, err := db.Query().Insert().Into("users").Set("name", "Ali").Set("age", 30).Exec(ctx)
	require.NoError(t, err)

	id, err := res.LastInsertID()
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)

	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDB_ExecThroughBuilder(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)

	mock.ExpectExec("DROP TABLE IF EXISTS `sessions`;").WillReturnResult(sqlmock.NewResult(0, 0))

	qb := db.Query()
	qb.Drop().Table("sessions").IfExists()
	_, err := qb.Exec(context.Background())
	require.NoError(t, err)
}

func TestDB_On(t *testing.T) {
	primary, _ := sqltest.New(t)
	otherDB, other := sqltest.New(t)
	db := NewDB(primary)

	other.ExpectExec("DELETE FROM `t` WHERE `id` = ?;").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := db.On(otherDB).Delete().From("t").Where("id", "=", 1).Exec(context.Background())
	require.NoError(t, err)
}

func TestSelect_Get(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)
	ctx := context.Background()

	mock.ExpectQuery("SELECT * FROM `users` WHERE `active` = ?;").WithArgs(true).WillReturnRows(usersRows())
	mock.ExpectQuery("SELECT * FROM `users`;").WillReturnRows(usersRows())
	mock.ExpectQuery("SELECT * FROM `users`;").WillReturnRows(usersRows())

	var users []testUser
	err := db.Query().Select().From("users").Where("active", "=", true).Get(ctx, &users)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, testUser{ID: 1, Name: "Ali", Email: "ali@example.com"}, users[0])
	assert.Equal(t, testUser{ID: 2, Name: "Veli", Email: "veli@example.com"}, users[1])

	var ptrs []*testUser
	require.NoError(t, db.Query().Select().From("users").Get(ctx, &ptrs))
	require.Len(t, ptrs, 2)
	assert.Equal(t, "Veli", ptrs[1].Name)

	var rows []Row
	require.NoError(t, db.Query().Select().From("users").Get(ctx, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "ali@example.com", rows[0].String("email"))
	assert.Equal(t, int64(2), rows[1]["id"])
	assert.Nil(t, rows[1]["extra"])
}

func TestSelect_GetDestinationErrors(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT * FROM `users`;").WillReturnRows(usersRows())
	}

	var users []testUser
	assert.ErrorIs(t, db.Query().Select().From("users").Get(ctx, users), ErrNotAPointer)

	var one testUser
	assert.ErrorIs(t, db.Query().Select().From("users").Get(ctx, &one), ErrNotASlice)

	var names []string
	assert.ErrorIs(t, db.Query().Select().From("users").Get(ctx, &names), ErrNotAStruct)
}

func TestSelect_First(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)
	ctx := context.Background()

	mock.ExpectQuery("SELECT * FROM `users` ORDER BY `id` LIMIT 1;").WillReturnRows(usersRows())
	mock.ExpectQuery("SELECT * FROM `users` ORDER BY `id` LIMIT 1;").WillReturnRows(usersRows())

	s := db.Query().Select().From("users").OrderBy("id")

	var u testUser
	require.NoError(t, s.First(ctx, &u))
	assert.Equal(t, "Ali", u.Name)

	sql, err := s.Compile()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` ORDER BY `id`;", sql, "First must not change the command")

	var row Row
	require.NoError(t, s.First(ctx, &row))
	assert.Equal(t, "Ali", row.String("name"))
}

func TestSelect_FirstNoRows(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)

	mock.ExpectQuery("SELECT * FROM `users` WHERE `id` = ? LIMIT 1;").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var u testUser
	err := db.Query().Select().From("users").Where("id", "=", 404).First(context.Background(), &u)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestSelect_CountAndPaginate(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)
	ctx := context.Background()

	count := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(25)) }
	mock.ExpectQuery("SELECT COUNT(*) FROM `users` WHERE `status` = ?;").WithArgs("active").WillReturnRows(count())
	mock.ExpectQuery("SELECT COUNT(*) FROM `users` WHERE `status` = ?;").WithArgs("active").WillReturnRows(count())
	mock.ExpectQuery("SELECT `id`, `name` FROM `users` WHERE `status` = ? ORDER BY `id` DESC LIMIT 10 OFFSET 10;").
		WithArgs("active").
		WillReturnRows(usersRows())

	s := db.Query().Select("id", "name").From("users").Where("status", "=", "active").OrderBy("id", "desc").Limit(3)

	total, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	var users []testUser
	p, err := s.Paginate(ctx, 2, 10, &users)
	require.NoError(t, err)
	assert.Equal(t, &Pagination{Page: 2, PerPage: 10, Total: 25, TotalPages: 3, HasMore: true}, p)
	assert.Len(t, users, 2)

	sql, err := s.Compile()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `name` FROM `users` WHERE `status` = ? ORDER BY `id` DESC LIMIT 3;", sql)
}

func TestSelect_Each(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)
	ctx := context.Background()

	mock.ExpectQuery("SELECT * FROM `users`;").WillReturnRows(usersRows())
	mock.ExpectQuery("SELECT * FROM `users`;").WillReturnRows(usersRows())

	var names []string
	err := db.Query().Select().From("users").Each(ctx, func(r Row) error {
		names = append(names, r.String("name"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ali", "Veli"}, names)

	stop := errors.New("stop")
	calls := 0
	err = db.Query().Select().From("users").Each(ctx, func(Row) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestCollect(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)

	mock.ExpectQuery("SELECT `name` FROM `tags`;").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a").AddRow("b").AddRow("c"))

	names, err := Collect(context.Background(), db.Query().Select("name").From("tags"),
		func(r *sql.Rows) (string, error) {
			var n string
			return n, r.Scan(&n)
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestShow_Rows(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB)

	mock.ExpectQuery("SHOW TABLES LIKE 'p_%';").
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow("p_users").AddRow([]byte("p_posts")))

	rows, err := db.Query().Show().Tables().Like("p_%").Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "p_users", rows[0].String("Tables_in_app"))
	assert.Equal(t, "p_posts", rows[1].String("Tables_in_app"))
}

func TestDB_DatabaseError(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a' for key 'email'"}
	sqlDB, mock := sqltest.New(t)
	logger := &captureLogger{}
	db := NewDB(sqlDB, WithLogger(logger))

	mock.ExpectExec("INSERT INTO `users` (`email`) VALUES (?);").WithArgs("a").WillReturnError(dup)

	_, err := db.Query().Insert().Into("users").Set("email", "a").Exec(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.True(t, IsDuplicateEntry(err))

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, uint16(1062), dbErr.Number)
	assert.Equal(t, "insert", dbErr.Op)
	assert.Equal(t, "INSERT INTO `users` (`email`) VALUES (?);", dbErr.Query)
	assert.Equal(t, []any{"a"}, dbErr.Args)

	require.Len(t, logger.queries, 1, "failed queries are logged without debug")
	assert.ErrorIs(t, logger.errs[0], dup)
}

func TestDB_DebugLogging(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM `t`;").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `t`;").WillReturnResult(sqlmock.NewResult(0, 0))

	quiet := &captureLogger{}
	_, err := NewDB(sqlDB, WithLogger(quiet)).Query().Delete().From("t").Exec(ctx)
	require.NoError(t, err)
	assert.Empty(t, quiet.queries)

	loud := &captureLogger{}
	db := NewDB(sqlDB, WithLogger(loud), WithDebug(true))
	_, err = db.Query().Delete().From("t").Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE FROM `t`;"}, loud.queries)
	assert.True(t, db.IsDebug())
}

func TestDB_DetectServerVersion(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	db := NewDB(sqlDB, WithGrammar(dialect.MySQL()))
	ctx := context.Background()

	sqltest.ExpectVersion(mock, "5.7.40-log")

	v, err := db.DetectServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5.7.40-log", v)

	_, err = db.Query().Alter("posts").RenameColumn("a", "b").Compile()
	assert.ErrorIs(t, err, ErrUnsupported)

	sql, err := db.Query().Alter("posts").ChangeColumn("a", schema.Varchar("b", 20)).Compile()
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE `posts` CHANGE `a` `b` VARCHAR(20) NOT NULL;", sql)
}

func TestDB_Accessors(t *testing.T) {
	sqlDB, mock := sqltest.New(t)
	mock.ExpectClose()
	logger := &captureLogger{}
	scanner := NewDefaultScanner()
	db := NewDB(sqlDB, WithTablePrefix("x_"), WithLogger(logger), WithScanner(scanner), nil)

	assert.Equal(t, "x_", db.TablePrefix())
	assert.Same(t, logger, db.Logger())
	assert.Same(t, scanner, db.Scanner())
	assert.Equal(t, "mysql", db.Grammar().Name())
	assert.Equal(t, "mysql", db.Query().Grammar().Name())
	assert.NoError(t, db.Ping(context.Background()))
	assert.NoError(t, db.Close())
}
