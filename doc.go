// Package sqlforge provides a command-oriented SQL builder for MySQL.
//
// A QueryBuilder selects exactly one command (SELECT, INSERT, UPDATE,
// DELETE, CREATE TABLE, ALTER TABLE, DROP or SHOW), configures it through
// a fluent API and compiles it into SQL text plus an ordered parameter
// list. Identifiers are validated and quoted, operators are whitelisted and
// values are always bound as parameters.
//
// # Quick Start
//
// Connect to a database and start building queries:
//
//	db, err := sqlforge.Connect(ctx, "user:pass@tcp(localhost:3306)/dbname?parseTime=true",
//	    sqlforge.WithTablePrefix("app_"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	var users []User
//	err = db.Query().Select("id", "name", "email").
//	    From("users").
//	    Where("status", "=", "active").
//	    OrderBy("created_at", "desc").
//	    Limit(10).
//	    Get(ctx, &users)
//
// Without a connection, New returns a builder that only compiles:
//
//	sql, args, err := sqlforge.New().Select("a", "b").From("table").ToSQL()
//	// SELECT `a`, `b` FROM `table`;
//
// # Where Clauses
//
// Select, Update and Delete share the same condition methods:
//
//	s.Where("age", ">", 18)
//	s.OrWhere("role", "=", "admin")
//	s.WhereIn("status", []string{"active", "pending"})
//	s.WhereBetween("created_at", start, end)
//	s.WhereNull("deleted_at")
//	s.OrEnclose(func(g *sqlforge.Group) *sqlforge.Group {
//	    return g.Where("id", "=", 10).OrWhere("balance", ">=", 1000)
//	})
//
// A string value shaped like a function call ("NOW()") is emitted as SQL;
// wrap untrusted input in Literal to force binding.
//
// # Insert, Update, Delete
//
//	res, err := db.Query().Insert().Into("users").
//	    Values(map[string]any{"name": "John", "email": "john@example.com"}).
//	    Exec(ctx)
//
//	res, err = db.Query().Update().Table("users").
//	    Set("status", "inactive").
//	    Where("id", "=", 1).
//	    Exec(ctx)
//
//	res, err = db.Query().Delete().From("users").
//	    Where("status", "=", "banned").
//	    Exec(ctx)
//
// # Schema
//
// CREATE and ALTER are described with the schema package:
//
//	_, err := db.Query().Create("posts").
//	    AddColumn(
//	        schema.Integer("id", 11).Unsigned().AutoIncrement(),
//	        schema.Varchar("title", 200),
//	    ).
//	    Engine("InnoDB").
//	    Exec(ctx)
//
// # Transactions
//
// The caller owns transactions. DB.On runs commands on any executor,
// including a *sql.Tx:
//
//	tx, err := db.BeginTx(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	if _, err := db.On(tx).Update().Table("accounts").Set("balance", 0).Where("id", "=", 1).Exec(ctx); err != nil {
//	    return err
//	}
//	return tx.Commit()
//
// # Errors
//
// Builder misuse matches ErrBuilderUsage, compile failures match
// ErrCompile, invalid blueprints match ErrMigrationUsage and driver
// failures match ErrDatabase. All of them work with errors.Is.
//
// # Thread Safety
//
// QueryBuilder instances are NOT thread-safe. Take a new builder from
// DB.Query for each goroutine or query.
package sqlforge
