// Package tablefile, YAML tablo tanımlarını schema.Blueprint'e çevirir.
//
// Örnek dosya:
//
//	table: posts
//	mode: create
//	engine: InnoDB
//	columns:
//	  - {name: id, type: bigint, unsigned: true, auto_increment: true}
//	  - {name: title, type: varchar, params: [200]}
//	  - {name: created_at, type: timestamp, use_current: true}
//	indexes:
//	  - {columns: [title]}
//	foreign_keys:
//	  - {columns: [user_id], references: [id], on: users, on_delete: cascade}
package tablefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/biyonik/go-sqlforge"
	"github.com/biyonik/go-sqlforge/schema"
)

// ErrInvalidFile, dosya okunabildi ama tanım tutarsız olduğunda döner.
var ErrInvalidFile = errors.New("tablefile: invalid table file")

const (
	ModeCreate = "create"
	ModeAlter  = "alter"
)

// Column, bir kolon tanımıdır. Type schema.ParseColumnType'ın tanıdığı
// adlardan biridir.
type Column struct {
	Name          string   `mapstructure:"name"`
	Type          string   `mapstructure:"type"`
	Params        []any    `mapstructure:"params"`
	Members       []string `mapstructure:"members"`
	Unsigned      bool     `mapstructure:"unsigned"`
	ZeroFill      bool     `mapstructure:"zerofill"`
	Nullable      bool     `mapstructure:"nullable"`
	Default       any      `mapstructure:"default"`
	DefaultNull   bool     `mapstructure:"default_null"`
	DefaultExpr   string   `mapstructure:"default_expr"`
	UseCurrent    bool     `mapstructure:"use_current"`
	AutoIncrement bool     `mapstructure:"auto_increment"`
	Comment       string   `mapstructure:"comment"`
	Charset       string   `mapstructure:"charset"`
	Collate       string   `mapstructure:"collate"`
	After         string   `mapstructure:"after"`
	First         bool     `mapstructure:"first"`
	// Rename, alter modunda kolonu yeni adla yeniden tanımlar (CHANGE).
	Rename string `mapstructure:"rename"`
	// Modify, alter modunda kolonu yerinde yeniden tanımlar (MODIFY).
	Modify bool `mapstructure:"modify"`
}

type Index struct {
	Name    string   `mapstructure:"name"`
	Columns []string `mapstructure:"columns"`
	Unique  bool     `mapstructure:"unique"`
}

type ForeignKey struct {
	Name       string   `mapstructure:"name"`
	Columns    []string `mapstructure:"columns"`
	References []string `mapstructure:"references"`
	On         string   `mapstructure:"on"`
	OnDelete   string   `mapstructure:"on_delete"`
	OnUpdate   string   `mapstructure:"on_update"`
}

type RenameColumn struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// File, bir tablo dosyasının tamamıdır.
type File struct {
	Table       string            `mapstructure:"table"`
	Mode        string            `mapstructure:"mode"`
	IfNotExists bool              `mapstructure:"if_not_exists"`
	Engine      string            `mapstructure:"engine"`
	Charset     string            `mapstructure:"charset"`
	Collate     string            `mapstructure:"collate"`
	Comment     string            `mapstructure:"comment"`
	Options     map[string]string `mapstructure:"options"`

	Columns     []Column     `mapstructure:"columns"`
	PrimaryKey  []string     `mapstructure:"primary_key"`
	Indexes     []Index      `mapstructure:"indexes"`
	ForeignKeys []ForeignKey `mapstructure:"foreign_keys"`

	DropColumns     []string       `mapstructure:"drop_columns"`
	RenameColumns   []RenameColumn `mapstructure:"rename_columns"`
	DropIndexes     []string       `mapstructure:"drop_indexes"`
	DropForeignKeys []string       `mapstructure:"drop_foreign_keys"`
	DropPrimaryKey  bool           `mapstructure:"drop_primary_key"`
	Rename          string         `mapstructure:"rename"`

	// Path, dosyanın okunduğu yol.
	Path string `mapstructure:"-"`
}

// Load, path'teki dosyayı fs üzerinden okur. Uzantı yaml, yml, json veya
// toml olabilir. Bilinmeyen anahtarlar hata sayılır.
func Load(fs afero.Fs, path string) (*File, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("tablefile: read %s: %w", path, err)
	}

	f := &File{}
	if err := v.Unmarshal(f, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}
	f.Path = path

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate, blueprint kurulmadan yakalanabilecek hataları döndürür.
func (f *File) Validate() error {
	var errs []error
	if f.Table == "" {
		errs = append(errs, fmt.Errorf("%w: table is required", ErrInvalidFile))
	}
	switch f.mode() {
	case ModeCreate, ModeAlter:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown mode %q", ErrInvalidFile, f.Mode))
	}
	if f.IfNotExists && f.mode() != ModeCreate {
		errs = append(errs, fmt.Errorf("%w: if_not_exists needs mode create", ErrInvalidFile))
	}
	for i, c := range f.Columns {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%w: column #%d has no name", ErrInvalidFile, i+1))
		}
		if _, ok := schema.ParseColumnType(c.Type); !ok {
			errs = append(errs, fmt.Errorf("%w: column %q: unknown type %q", ErrInvalidFile, c.Name, c.Type))
		}
	}
	for i, rc := range f.RenameColumns {
		if rc.From == "" || rc.To == "" {
			errs = append(errs, fmt.Errorf("%w: rename_columns #%d needs from and to", ErrInvalidFile, i+1))
		}
	}
	return errors.Join(errs...)
}

func (f *File) mode() string {
	if f.Mode == "" {
		return ModeCreate
	}
	return strings.ToLower(f.Mode)
}

// Creating, dosyanın CREATE TABLE tanımladığını bildirir.
func (f *File) Creating() bool { return f.mode() == ModeCreate }

// Blueprint, dosyayı blueprint'e çevirir. Blueprint'in kendi kuralları
// (örn. create modunda DROP yapılamaz) bp.Err() ile raporlanır.
func (f *File) Blueprint() (*schema.Blueprint, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	bp := schema.NewBlueprint(f.Table, f.Creating())

	for _, c := range f.Columns {
		col, err := c.build()
		if err != nil {
			return nil, err
		}
		switch {
		case c.Rename != "":
			bp.ChangeColumn(c.Name, col.Rename(c.Rename))
		case c.Modify:
			bp.ModifyColumn(col)
		default:
			bp.AddColumn(col)
		}
	}

	for _, name := range f.DropColumns {
		bp.DropColumn(name)
	}
	for _, rc := range f.RenameColumns {
		bp.RenameColumn(rc.From, rc.To)
	}
	if f.DropPrimaryKey {
		bp.DropPrimaryKey()
	}
	for _, name := range f.DropIndexes {
		bp.DropIndex(name)
	}
	for _, name := range f.DropForeignKeys {
		bp.DropForeignKey(name)
	}

	if len(f.PrimaryKey) > 0 {
		bp.AddPrimaryKey(f.PrimaryKey...)
	}
	for _, idx := range f.Indexes {
		if idx.Unique {
			bp.AddUniqueIndex(idx.Name, idx.Columns...)
		} else {
			bp.AddIndex(idx.Name, idx.Columns...)
		}
	}
	for _, fk := range f.ForeignKeys {
		k := schema.Foreign(fk.Columns...).References(fk.References...).On(fk.On)
		if fk.Name != "" {
			k.Named(fk.Name)
		}
		if fk.OnDelete != "" {
			k.OnDeleteAction(fk.OnDelete)
		}
		if fk.OnUpdate != "" {
			k.OnUpdateAction(fk.OnUpdate)
		}
		bp.AddForeignKey(k)
	}

	if f.Rename != "" {
		bp.Rename(f.Rename)
	}
	if f.Engine != "" {
		bp.Engine(f.Engine)
	}
	if f.Charset != "" {
		bp.Charset(f.Charset)
	}
	if f.Collate != "" {
		bp.Collate(f.Collate)
	}
	if f.Comment != "" {
		bp.Comment(f.Comment)
	}
	for _, name := range sortedKeys(f.Options) {
		bp.Opt(name, f.Options[name])
	}

	if err := bp.Err(); err != nil {
		return nil, err
	}
	return bp, nil
}

// Command, dosyayı qb üzerinde CREATE veya ALTER komutu olarak seçer.
func (f *File) Command(qb *sqlforge.QueryBuilder) (sqlforge.Command, error) {
	bp, err := f.Blueprint()
	if err != nil {
		return nil, err
	}
	cmd := qb.Blueprint(bp)
	if create, ok := cmd.(*sqlforge.CreateCommand); ok && f.IfNotExists {
		create.IfNotExists()
	}
	return cmd, nil
}

func (c Column) build() (*schema.Column, error) {
	t, _ := schema.ParseColumnType(c.Type)

	params := c.Params
	for _, m := range c.Members {
		params = append(params, m)
	}
	col := schema.NewColumn(t, c.Name, params...)

	if c.Unsigned {
		col.Unsigned()
	}
	if c.ZeroFill {
		col.ZeroFill()
	}
	if c.Nullable {
		col.Nullable()
	}

	defaults := 0
	if c.Default != nil {
		col.Default(c.Default)
		defaults++
	}
	if c.DefaultNull {
		col.Nullable().Default(nil)
		defaults++
	}
	if c.DefaultExpr != "" {
		col.Default(schema.Expression(c.DefaultExpr))
		defaults++
	}
	if c.UseCurrent {
		col.UseCurrent()
		defaults++
	}
	if defaults > 1 {
		return nil, fmt.Errorf("%w: column %q: default, default_null, default_expr and use_current are exclusive", ErrInvalidFile, c.Name)
	}

	if c.AutoIncrement {
		col.AutoIncrement()
	}
	if c.Comment != "" {
		col.Comment(c.Comment)
	}
	if c.Charset != "" {
		col.Charset(c.Charset)
	}
	if c.Collate != "" {
		col.Collate(c.Collate)
	}
	if c.First {
		col.First()
	}
	if c.After != "" {
		col.After(c.After)
	}
	return col, nil
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
