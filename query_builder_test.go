package sqlforge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-sqlforge/dialect"
	"github.com/biyonik/go-sqlforge/schema"
)

func TestQueryBuilder_Compile(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		build    func(qb *QueryBuilder) Command
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "select with prefix",
			prefix:   "p_",
			build:    func(qb *QueryBuilder) Command { return qb.Select("a", "b").From("table") },
			wantSQL:  "SELECT `a`, `b` FROM `p_table`;",
			wantArgs: []any{},
		},
		{
			name:   "select star with alias and conditions",
			prefix: "app_",
			build: func(qb *QueryBuilder) Command {
				return qb.Select().From("users u").
					Where("u.status", "=", "active").
					WhereIn("u.role", []string{"admin", "editor"}).
					WhereNotNull("u.verified_at").
					OrderBy("u.name", "asc", "u.id", "desc").
					Limit(10)
			},
			wantSQL: "SELECT * FROM `app_users` AS `u` WHERE `u`.`status` = ? AND `u`.`role` IN (?, ?) " +
				"AND `u`.`verified_at` IS NOT NULL ORDER BY `u`.`name` ASC, `u`.`id` DESC LIMIT 10;",
			wantArgs: []any{"active", "admin", "editor"},
		},
		{
			name: "nested enclose",
			build: func(qb *QueryBuilder) Command {
				return qb.Select().From("accounts").
					Where("x", "=", 1).
					OrEnclose(func(g *Group) *Group {
						return g.Enclose(func(inner *Group) *Group {
							return inner.Where("id", "=", 10).OrWhere("balance", ">=", 1000)
						})
					})
			},
			wantSQL:  "SELECT * FROM `accounts` WHERE `x` = ? OR ( ( `id` = ? OR `balance` >= ? ) );",
			wantArgs: []any{1, 10, 1000},
		},
		{
			name: "empty enclose ignored",
			build: func(qb *QueryBuilder) Command {
				return qb.Select("id").From("t").
					Enclose(func(g *Group) *Group { return g }).
					OrEnclose(nil).
					Where("id", ">", 3)
			},
			wantSQL:  "SELECT `id` FROM `t` WHERE `id` > ?;",
			wantArgs: []any{3},
		},
		{
			name: "function value and raw where",
			build: func(qb *QueryBuilder) Command {
				return qb.Select("COUNT(*) AS total").From("events").
					Where("created_at", ">", Func("DATE_SUB", Raw("NOW()"), 7)).
					WhereRaw("YEAR(created_at) = ?", 2024).
					OrWhereNull("archived_at")
			},
			wantSQL: "SELECT COUNT(*) AS `total` FROM `events` WHERE `created_at` > DATE_SUB(NOW(), ?) " +
				"AND YEAR(created_at) = ? OR `archived_at` IS NULL;",
			wantArgs: []any{7, 2024},
		},
		{
			name: "literal keeps function-looking input bound",
			build: func(qb *QueryBuilder) Command {
				return qb.Select().From("posts").Where("title", "=", Literal("NOW()"))
			},
			wantSQL:  "SELECT * FROM `posts` WHERE `title` = ?;",
			wantArgs: []any{"NOW()"},
		},
		{
			name: "between and for page",
			build: func(qb *QueryBuilder) Command {
				return qb.Select().From("users").WhereBetween("age", 18, 65).ForPage(3, 10)
			},
			wantSQL:  "SELECT * FROM `users` WHERE `age` BETWEEN ? AND ? LIMIT 10 OFFSET 20;",
			wantArgs: []any{18, 65},
		},
		{
			name:     "distinct multiple tables",
			build:    func(qb *QueryBuilder) Command { return qb.Select("a.id").Distinct().From("a", "b") },
			wantSQL:  "SELECT DISTINCT `a`.`id` FROM `a`, `b`;",
			wantArgs: []any{},
		},
		{
			name: "insert batch with upsert",
			build: func(qb *QueryBuilder) Command {
				return qb.Insert().Into("users").
					Values(map[string]any{"name": "Ali", "email": "ali@example.com"}).
					Values(map[string]any{"email": "veli@example.com", "name": "Veli"}).
					OnDuplicateKeyUpdate("name")
			},
			wantSQL: "INSERT INTO `users` (`email`, `name`) VALUES (?, ?), (?, ?) " +
				"ON DUPLICATE KEY UPDATE `name` = VALUES(`name`);",
			wantArgs: []any{"ali@example.com", "Ali", "veli@example.com", "Veli"},
		},
		{
			name:   "insert with set",
			prefix: "p_",
			build: func(qb *QueryBuilder) Command {
				return qb.Insert().Into("events").Set("kind", "login").Set("at", "NOW()").Set("kind", "logout")
			},
			wantSQL:  "INSERT INTO `p_events` (`kind`, `at`) VALUES (?, NOW());",
			wantArgs: []any{"logout"},
		},
		{
			name: "update parameter order",
			build: func(qb *QueryBuilder) Command {
				return qb.Update().Table("accounts").
					Set("balance", 0).
					Set("visits", Raw("visits + ?", 1)).
					Set("updated_at", "NOW()").
					Where("id", "=", 7)
			},
			wantSQL:  "UPDATE `accounts` SET `balance` = ?, `visits` = visits + ?, `updated_at` = NOW() WHERE `id` = ?;",
			wantArgs: []any{0, 1, 7},
		},
		{
			name: "update values map with order and limit",
			build: func(qb *QueryBuilder) Command {
				return qb.Update().Table("jobs").
					Values(map[string]any{"state": "queued", "attempts": 0}).
					WhereNull("locked_at").
					OrderBy("id").
					Limit(100)
			},
			wantSQL:  "UPDATE `jobs` SET `attempts` = ?, `state` = ? WHERE `locked_at` IS NULL ORDER BY `id` LIMIT 100;",
			wantArgs: []any{0, "queued"},
		},
		{
			name: "delete",
			build: func(qb *QueryBuilder) Command {
				return qb.Delete().From("sessions").
					Where("expires_at", "<", "2024-01-01").
					OrWhere("revoked", "=", true).
					OrderBy("id").
					Limit(500)
			},
			wantSQL:  "DELETE FROM `sessions` WHERE `expires_at` < ? OR `revoked` = ? ORDER BY `id` LIMIT 500;",
			wantArgs: []any{"2024-01-01", true},
		},
		{
			name:   "create",
			prefix: "p_",
			build: func(qb *QueryBuilder) Command {
				return qb.Create("posts").
					AddColumn(
						schema.Integer("id", 11).Unsigned().AutoIncrement(),
						schema.Integer("user_id", 11).Unsigned(),
					).
					AddForeignKey(schema.Foreign("user_id").References("id").On("users")).
					Engine("InnoDB").
					IfNotExists()
			},
			wantSQL: "CREATE TABLE IF NOT EXISTS `p_posts` (`id` INT(11) UNSIGNED NOT NULL AUTO_INCREMENT, " +
				"`user_id` INT(11) UNSIGNED NOT NULL, PRIMARY KEY (`id`), " +
				"FOREIGN KEY `fk_posts_user_id` (`user_id`) REFERENCES `p_users` (`id`) ON DELETE RESTRICT ON UPDATE RESTRICT" +
				") ENGINE=InnoDB;",
			wantArgs: []any{},
		},
		{
			name:   "alter",
			prefix: "test_",
			build: func(qb *QueryBuilder) Command {
				return qb.Alter("posts").
					AddColumn(schema.Varchar("slug", 200).After("title")).
					ModifyColumn(schema.Text("body").Nullable()).
					DropIndex("posts_legacy")
			},
			wantSQL: "ALTER TABLE `test_posts` ADD `slug` VARCHAR(200) NOT NULL AFTER `title`, " +
				"MODIFY `body` TEXT NULL, DROP INDEX `posts_legacy`;",
			wantArgs: []any{},
		},
		{
			name:     "drop tables",
			prefix:   "p_",
			build:    func(qb *QueryBuilder) Command { return qb.Drop().Table("sessions", "tokens").IfExists() },
			wantSQL:  "DROP TABLE IF EXISTS `p_sessions`, `p_tokens`;",
			wantArgs: []any{},
		},
		{
			name:     "drop database ignores prefix",
			prefix:   "p_",
			build:    func(qb *QueryBuilder) Command { return qb.Drop().Database("shop") },
			wantSQL:  "DROP DATABASE `shop`;",
			wantArgs: []any{},
		},
		{
			name:     "show columns",
			prefix:   "p_",
			build:    func(qb *QueryBuilder) Command { return qb.Show().Columns("users").Like("email%") },
			wantSQL:  "SHOW COLUMNS FROM `p_users` LIKE 'email%';",
			wantArgs: []any{},
		},
		{
			name:     "show tables default",
			build:    func(qb *QueryBuilder) Command { return qb.Show() },
			wantSQL:  "SHOW TABLES;",
			wantArgs: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := New(WithTablePrefix(tt.prefix))
			cmd := tt.build(qb)

			sql, err := qb.Compile()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, qb.Parameters())

			again, err := cmd.Compile()
			require.NoError(t, err)
			assert.Equal(t, sql, again, "compile must be repeatable")
			assert.Equal(t, tt.wantArgs, cmd.Parameters())
		})
	}
}

func TestQueryBuilder_ParametersCompileImplicitly(t *testing.T) {
	qb := New()
	qb.Select().From("users").Where("id", "=", 5)

	assert.Equal(t, []any{5}, qb.Parameters())

	sql, args, err := qb.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE `id` = ?;", sql)
	assert.Equal(t, []any{5}, args)
}

func TestQueryBuilder_FailedCompileDropsParameters(t *testing.T) {
	s := New().Select().From("users").Where("id", "=", 5)

	_, err := s.Compile()
	require.NoError(t, err)
	assert.Equal(t, []any{5}, s.Parameters())

	s.WhereIn("role", []string{})
	_, err = s.Compile()
	require.ErrorIs(t, err, ErrCompile)
	assert.Nil(t, s.Parameters())
}

func TestQueryBuilder_PrefixReadAtCompileTime(t *testing.T) {
	qb := New()
	s := qb.Select("id").From("users")

	qb.SetPrefix("tenant1_")
	sql, err := s.Compile()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id` FROM `tenant1_users`;", sql)
	assert.Equal(t, "tenant1_", qb.Prefix())
	assert.Equal(t, []string{"tenant1_users"}, s.GetTables())
}

func TestQueryBuilder_UsageErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("no command selected", func(t *testing.T) {
		qb := New()

		_, err := qb.Compile()
		assert.ErrorIs(t, err, ErrNoCommand)
		assert.ErrorIs(t, err, ErrBuilderUsage)

		assert.Nil(t, qb.Parameters())

		_, _, err = qb.ToSQL()
		assert.ErrorIs(t, err, ErrNoCommand)

		_, err = qb.Exec(ctx)
		assert.ErrorIs(t, err, ErrNoCommand)

		_, err = qb.Active()
		assert.ErrorIs(t, err, ErrNoCommand)
	})

	t.Run("second typed selector", func(t *testing.T) {
		qb := New()
		first := qb.Select().From("users")
		second := qb.Insert().Into("users").Set("a", 1)

		_, err := second.Compile()
		assert.ErrorIs(t, err, ErrCommandAlreadySelected)
		assert.ErrorIs(t, qb.Err(), ErrBuilderUsage)

		active, err := qb.Active()
		require.NoError(t, err)
		assert.Same(t, first, active)

		sql, err := qb.Compile()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM `users`;", sql)
	})

	t.Run("command while active", func(t *testing.T) {
		qb := New()
		qb.Delete().From("t")

		cmd, err := qb.Command("select", "id")
		assert.Nil(t, cmd)
		assert.ErrorIs(t, err, ErrCommandAlreadySelected)
	})

	t.Run("unknown command", func(t *testing.T) {
		qb := New()
		cmd, err := qb.Command("merge")
		assert.Nil(t, cmd)
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.ErrorIs(t, err, ErrBuilderUsage)
		assert.ErrorIs(t, qb.Err(), ErrUnknownCommand)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
		}{
			{"alter", nil},
			{"create", []string{"a", "b"}},
			{"insert", []string{"users"}},
			{"drop", []string{"users"}},
			{"show", []string{"tables"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				qb := New()
				_, err := qb.Command(tt.name, tt.args...)
				assert.ErrorIs(t, err, ErrInvalidArguments)
				_, err = qb.Active()
				assert.ErrorIs(t, err, ErrNoCommand)
			})
		}
	})

	t.Run("reset allows a new command", func(t *testing.T) {
		qb := New()
		qb.Select().From("a")
		qb.Reset()
		qb.Delete().From("b")

		sql, err := qb.Compile()
		require.NoError(t, err)
		assert.Equal(t, "DELETE FROM `b`;", sql)
		assert.NoError(t, qb.Err())
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := New().Select().From("t").Limit(-1).Compile()
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("direction without column", func(t *testing.T) {
		_, err := New().Select().From("t").OrderBy("desc", "id").Compile()
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("drop mixing tables and databases", func(t *testing.T) {
		_, err := New().Drop().Table("t").Database("d").Compile()
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("parameters on failed compile", func(t *testing.T) {
		qb := New()
		qb.Insert().Into("t")
		assert.Nil(t, qb.Parameters())
	})
}

func TestQueryBuilder_CommandByName(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		setup   func(Command)
		wantSQL string
	}{
		{
			name: "ALTER",
			args: []string{"posts"},
			setup: func(c Command) {
				c.(*AlterCommand).AddColumn(schema.Integer("id", 11).Unsigned())
			},
			wantSQL: "ALTER TABLE `test_posts` ADD `id` INT(11) UNSIGNED NOT NULL;",
		},
		{
			name: "create",
			args: []string{"tags"},
			setup: func(c Command) {
				c.(*CreateCommand).AddColumn(schema.Varchar("slug", 64)).AddPrimaryKey("slug")
			},
			wantSQL: "CREATE TABLE `test_tags` (`slug` VARCHAR(64) NOT NULL, PRIMARY KEY (`slug`));",
		},
		{
			name:    " Select ",
			args:    []string{"id", "name"},
			setup:   func(c Command) { c.(*SelectCommand).From("users") },
			wantSQL: "SELECT `id`, `name` FROM `test_users`;",
		},
		{
			name:    "show",
			setup:   func(c Command) { c.(*ShowCommand).Databases() },
			wantSQL: "SHOW DATABASES;",
		},
		{
			name:    "drop",
			setup:   func(c Command) { c.(*DropCommand).Table("old") },
			wantSQL: "DROP TABLE `test_old`;",
		},
		{
			name:    "update",
			setup:   func(c Command) { c.(*UpdateCommand).Table("t").Set("a", 1) },
			wantSQL: "UPDATE `test_t` SET `a` = ?;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := New(WithTablePrefix("test_"))
			cmd, err := qb.Command(tt.name, tt.args...)
			require.NoError(t, err)
			tt.setup(cmd)

			sql, err := qb.Compile()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
		})
	}
}

func TestQueryBuilder_Blueprint(t *testing.T) {
	qb := New()
	cmd := qb.Blueprint(schema.Create("tags", func(b *schema.Blueprint) {
		b.AddColumn(schema.Integer("id").AutoIncrement())
	}))
	require.IsType(t, &CreateCommand{}, cmd)

	sql, err := cmd.Compile()
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `tags` (`id` INT NOT NULL AUTO_INCREMENT, PRIMARY KEY (`id`));", sql)

	qb.Reset()
	cmd = qb.Blueprint(schema.Table("tags", func(b *schema.Blueprint) { b.DropColumn("legacy") }))
	require.IsType(t, &AlterCommand{}, cmd)

	sql, err = cmd.Compile()
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE `tags` DROP `legacy`;", sql)
}

func TestQueryBuilder_CompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(qb *QueryBuilder) Command
		wantErr error
	}{
		{"select without table", func(qb *QueryBuilder) Command { return qb.Select("id") }, dialect.ErrNoTable},
		{"insert without values", func(qb *QueryBuilder) Command { return qb.Insert().Into("t") }, dialect.ErrNoColumns},
		{
			"insert inconsistent batch",
			func(qb *QueryBuilder) Command {
				return qb.Insert().Into("t").Values(map[string]any{"a": 1}).Values(map[string]any{"b": 2})
			},
			dialect.ErrInconsistentBatch,
		},
		{"update without assignments", func(qb *QueryBuilder) Command { return qb.Update().Table("t") }, dialect.ErrNoColumns},
		{"alter without changes", func(qb *QueryBuilder) Command { return qb.Alter("t") }, dialect.ErrNoChanges},
		{
			"drop while creating",
			func(qb *QueryBuilder) Command {
				return qb.Create("t").AddColumn(schema.Integer("id")).Blueprint(func(b *schema.Blueprint) {
					b.DropColumn("x")
				})
			},
			ErrMigrationUsage,
		},
		{
			"injected identifier",
			func(qb *QueryBuilder) Command { return qb.Select("id; DROP TABLE users").From("t") },
			ErrInvalidIdentifier,
		},
		{
			"injected operator",
			func(qb *QueryBuilder) Command { return qb.Select().From("t").Where("id", "= 1 OR 1 =", 1) },
			ErrInvalidOperator,
		},
		{
			"empty in list",
			func(qb *QueryBuilder) Command { return qb.Select().From("t").WhereIn("id", []int{}) },
			ErrCompile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := New()
			tt.build(qb)
			_, err := qb.Compile()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQueryBuilder_NoExecutor(t *testing.T) {
	ctx := context.Background()

	_, err := New().Insert().Into("t").Set("a", 1).Exec(ctx)
	assert.ErrorIs(t, err, ErrNoExecutor)

	var rows []Row
	err = New().Select().From("t").Get(ctx, &rows)
	assert.ErrorIs(t, err, ErrNoExecutor)

	_, err = New().Select().From("t").Count(ctx)
	assert.ErrorIs(t, err, ErrNoExecutor)

	_, err = New().Show().Tables().Rows(ctx)
	assert.ErrorIs(t, err, ErrNoExecutor)
}

func TestGroup(t *testing.T) {
	g := NewGroup().Where("a", "=", 1).OrWhereNotNull("b")
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, dialect.WhereBooleanOr, g.GetWheres()[1].Boolean)
	assert.Equal(t, dialect.WhereTypeNotNull, g.GetWheres()[1].Type)
}
