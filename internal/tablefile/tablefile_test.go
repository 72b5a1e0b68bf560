package tablefile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-sqlforge"
	"github.com/biyonik/go-sqlforge/schema"
)

const postsYAML = `
table: posts
mode: create
if_not_exists: true
engine: InnoDB
charset: utf8mb4
collate: utf8mb4_unicode_ci
comment: Blog posts
columns:
  - name: id
    type: int
    params: [11]
    unsigned: true
    auto_increment: true
  - name: title
    type: varchar
    params: [200]
  - name: user_id
    type: int
    params: [11]
    unsigned: true
indexes:
  - columns: [title]
foreign_keys:
  - columns: [user_id]
    references: [id]
    on: users
    on_delete: cascade
`

func writeFile(t *testing.T, path, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return fs
}

func TestLoad_CreateCompiles(t *testing.T) {
	fs := writeFile(t, "/tables/posts.yaml", postsYAML)

	f, err := Load(fs, "/tables/posts.yaml")
	require.NoError(t, err)
	assert.Equal(t, "posts", f.Table)
	assert.True(t, f.Creating())
	assert.Equal(t, "/tables/posts.yaml", f.Path)
	require.Len(t, f.Columns, 3)

	cmd, err := f.Command(sqlforge.New(sqlforge.WithTablePrefix("p_")))
	require.NoError(t, err)
	require.IsType(t, &sqlforge.CreateCommand{}, cmd)

	sql, err := cmd.Compile()
	require.NoError(t, err)
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS `p_posts` ("+
			"`id` INT(11) UNSIGNED NOT NULL AUTO_INCREMENT, "+
			"`title` VARCHAR(200) NOT NULL, "+
			"`user_id` INT(11) UNSIGNED NOT NULL, "+
			"PRIMARY KEY (`id`), "+
			"INDEX `posts_title` (`title`), "+
			"FOREIGN KEY `fk_posts_user_id` (`user_id`) REFERENCES `p_users` (`id`) ON DELETE CASCADE ON UPDATE RESTRICT"+
			") ENGINE=InnoDB DEFAULT CHARACTER SET=utf8mb4 COLLATE=utf8mb4_unicode_ci COMMENT='Blog posts';",
		sql)
}

func TestLoad_AlterCompiles(t *testing.T) {
	fs := writeFile(t, "/tables/posts.yml", `
table: posts
mode: alter
columns:
  - {name: slug, type: varchar, params: [200], after: title}
  - {name: body, type: text, nullable: true, modify: true}
drop_columns: [legacy]
`)

	f, err := Load(fs, "/tables/posts.yml")
	require.NoError(t, err)
	assert.False(t, f.Creating())

	cmd, err := f.Command(sqlforge.New())
	require.NoError(t, err)
	require.IsType(t, &sqlforge.AlterCommand{}, cmd)

	sql, err := cmd.Compile()
	require.NoError(t, err)
	assert.Equal(t,
		"ALTER TABLE `posts` ADD `slug` VARCHAR(200) NOT NULL AFTER `title`, MODIFY `body` TEXT NULL, DROP `legacy`;",
		sql)
}

func TestLoad_JSON(t *testing.T) {
	fs := writeFile(t, "/t.json", `{"table": "tags", "columns": [{"name": "slug", "type": "varchar", "params": [64]}], "primary_key": ["slug"]}`)

	f, err := Load(fs, "/t.json")
	require.NoError(t, err)

	cmd, err := f.Command(sqlforge.New())
	require.NoError(t, err)
	sql, err := cmd.Compile()
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `tags` (`slug` VARCHAR(64) NOT NULL, PRIMARY KEY (`slug`));", sql)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"unknown key", "table: t\ncolumnz: []\n", ErrInvalidFile},
		{"missing table", "columns: [{name: a, type: int}]\n", ErrInvalidFile},
		{"unknown mode", "table: t\nmode: upsert\n", ErrInvalidFile},
		{"unknown type", "table: t\ncolumns: [{name: a, type: geometry}]\n", ErrInvalidFile},
		{"if not exists on alter", "table: t\nmode: alter\nif_not_exists: true\n", ErrInvalidFile},
		{"half rename", "table: t\nmode: alter\nrename_columns: [{from: a}]\n", ErrInvalidFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := writeFile(t, "/t.yaml", tt.content)
			_, err := Load(fs, "/t.yaml")
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := Load(afero.NewMemMapFs(), "/missing.yaml")
	assert.Error(t, err)
}

func TestFile_BlueprintRules(t *testing.T) {
	f := &File{
		Table:       "posts",
		Columns:     []Column{{Name: "id", Type: "int"}},
		DropColumns: []string{"legacy"},
	}
	_, err := f.Blueprint()
	assert.ErrorIs(t, err, schema.ErrMigrationUsage, "create mode cannot drop")

	f = &File{
		Table:   "posts",
		Columns: []Column{{Name: "n", Type: "int", Default: 0, UseCurrent: true}},
	}
	_, err = f.Blueprint()
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestColumn_Build(t *testing.T) {
	tests := []struct {
		name   string
		column Column
		check  func(t *testing.T, c *schema.Column)
	}{
		{
			"enum members",
			Column{Name: "status", Type: "enum", Members: []string{"draft", "published"}, Default: "draft"},
			func(t *testing.T, c *schema.Column) {
				assert.Equal(t, schema.TypeEnum, c.Type)
				assert.Equal(t, []any{"draft", "published"}, c.Params)
				assert.Equal(t, "draft", c.DefaultValue())
			},
		},
		{
			"default null",
			Column{Name: "deleted_at", Type: "timestamp", DefaultNull: true},
			func(t *testing.T, c *schema.Column) {
				assert.True(t, c.IsNullable())
				assert.True(t, c.HasDefault())
				assert.Nil(t, c.DefaultValue())
			},
		},
		{
			"expression default",
			Column{Name: "uuid", Type: "char", Params: []any{36}, DefaultExpr: "(UUID())"},
			func(t *testing.T, c *schema.Column) {
				assert.Equal(t, schema.Expression("(UUID())"), c.DefaultValue())
			},
		},
		{
			"use current and placement",
			Column{Name: "created_at", Type: "timestamp", UseCurrent: true, First: true, Comment: "c"},
			func(t *testing.T, c *schema.Column) {
				assert.Equal(t, schema.Expression("CURRENT_TIMESTAMP"), c.DefaultValue())
				assert.True(t, c.GetPlacement().First)
				assert.Equal(t, "c", c.CommentText())
			},
		},
		{
			"charset on text",
			Column{Name: "body", Type: "text", Charset: "utf8mb4", Collate: "utf8mb4_bin", ZeroFill: false},
			func(t *testing.T, c *schema.Column) {
				assert.NoError(t, c.Err())
				assert.Equal(t, "utf8mb4", c.CharsetName())
				assert.Equal(t, "utf8mb4_bin", c.CollationName())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.column.build()
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestFile_ChangeAndRenames(t *testing.T) {
	f := &File{
		Table: "posts",
		Mode:  "ALTER",
		Columns: []Column{
			{Name: "name", Type: "varchar", Params: []any{50}, Rename: "title"},
		},
		RenameColumns:   []RenameColumn{{From: "c", To: "d"}},
		DropForeignKeys: []string{"fk_old"},
		Rename:          "articles",
	}

	bp, err := f.Blueprint()
	require.NoError(t, err)

	cmds := bp.Commands()
	require.Len(t, cmds, 4)
	assert.Equal(t, schema.CommandChangeColumn, cmds[0].Kind)
	assert.Equal(t, "name", cmds[0].From)
	assert.Equal(t, "title", cmds[0].Column.TargetName())
	assert.Equal(t, schema.CommandRenameColumn, cmds[1].Kind)
	assert.Equal(t, schema.CommandDropForeign, cmds[2].Kind)
	assert.Equal(t, schema.CommandRename, cmds[3].Kind)
}

func TestFile_Markdown(t *testing.T) {
	fs := writeFile(t, "/posts.yaml", postsYAML)
	f, err := Load(fs, "/posts.yaml")
	require.NoError(t, err)

	md := f.Markdown("CREATE TABLE `posts` (...);")
	assert.Contains(t, md, "# Create table `posts`")
	assert.Contains(t, md, "Blog posts")
	assert.Contains(t, md, "engine **InnoDB**")
	assert.Contains(t, md, "| `id` | INT(11) unsigned | no |  | auto increment |")
	assert.Contains(t, md, "- INDEX (derived) (`title`)")
	assert.Contains(t, md, "- (`user_id`) references `users` (`id`), on delete CASCADE")
	assert.Contains(t, md, "```sql\nCREATE TABLE `posts` (...);\n```")

	alter := &File{Table: "posts", Mode: ModeAlter, DropColumns: []string{"legacy"}, DropPrimaryKey: true}
	md = alter.Markdown("")
	assert.Contains(t, md, "# Alter table `posts`")
	assert.Contains(t, md, "- drop column `legacy`")
	assert.Contains(t, md, "- drop primary key")
	assert.NotContains(t, md, "## SQL")
}
