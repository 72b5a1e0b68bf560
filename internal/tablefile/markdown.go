package tablefile

import (
	"fmt"
	"strings"
)

// Markdown, tablo dosyasını okunabilir bir belgeye çevirir. sql boş değilse
// derlenmiş ifade belgenin sonuna kod bloğu olarak eklenir.
func (f *File) Markdown(sql string) string {
	var b strings.Builder

	verb := "Create"
	if !f.Creating() {
		verb = "Alter"
	}
	fmt.Fprintf(&b, "# %s table `%s`\n\n", verb, f.Table)
	if f.Comment != "" {
		fmt.Fprintf(&b, "%s\n\n", f.Comment)
	}

	var opts []string
	if f.Engine != "" {
		opts = append(opts, "engine **"+f.Engine+"**")
	}
	if f.Charset != "" {
		opts = append(opts, "charset **"+f.Charset+"**")
	}
	if f.Collate != "" {
		opts = append(opts, "collation **"+f.Collate+"**")
	}
	if f.Rename != "" {
		opts = append(opts, "renamed to `"+f.Rename+"`")
	}
	if len(opts) > 0 {
		b.WriteString(strings.Join(opts, ", ") + "\n\n")
	}

	if len(f.Columns) > 0 {
		b.WriteString("## Columns\n\n")
		b.WriteString("| Name | Type | Null | Default | Notes |\n")
		b.WriteString("|------|------|------|---------|-------|\n")
		for _, c := range f.Columns {
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
				c.Name, c.typeText(), yesNo(c.Nullable || c.DefaultNull), c.defaultText(), c.notes())
		}
		b.WriteString("\n")
	}

	if len(f.PrimaryKey) > 0 || len(f.Indexes) > 0 {
		b.WriteString("## Indexes\n\n")
		if len(f.PrimaryKey) > 0 {
			fmt.Fprintf(&b, "- PRIMARY KEY (%s)\n", codeList(f.PrimaryKey))
		}
		for _, idx := range f.Indexes {
			kind := "INDEX"
			if idx.Unique {
				kind = "UNIQUE"
			}
			name := idx.Name
			if name == "" {
				name = "(derived)"
			}
			fmt.Fprintf(&b, "- %s %s (%s)\n", kind, name, codeList(idx.Columns))
		}
		b.WriteString("\n")
	}

	if len(f.ForeignKeys) > 0 {
		b.WriteString("## Foreign keys\n\n")
		for _, fk := range f.ForeignKeys {
			fmt.Fprintf(&b, "- (%s) references `%s` (%s)", codeList(fk.Columns), fk.On, codeList(fk.References))
			if fk.OnDelete != "" {
				fmt.Fprintf(&b, ", on delete %s", strings.ToUpper(fk.OnDelete))
			}
			if fk.OnUpdate != "" {
				fmt.Fprintf(&b, ", on update %s", strings.ToUpper(fk.OnUpdate))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var drops []string
	for _, c := range f.DropColumns {
		drops = append(drops, "- drop column `"+c+"`")
	}
	for _, rc := range f.RenameColumns {
		drops = append(drops, "- rename column `"+rc.From+"` to `"+rc.To+"`")
	}
	if f.DropPrimaryKey {
		drops = append(drops, "- drop primary key")
	}
	for _, n := range f.DropIndexes {
		drops = append(drops, "- drop index `"+n+"`")
	}
	for _, n := range f.DropForeignKeys {
		drops = append(drops, "- drop foreign key `"+n+"`")
	}
	if len(drops) > 0 {
		b.WriteString("## Changes\n\n")
		b.WriteString(strings.Join(drops, "\n") + "\n\n")
	}

	if sql != "" {
		b.WriteString("## SQL\n\n```sql\n" + sql + "\n```\n")
	}
	return b.String()
}

func (c Column) typeText() string {
	t := strings.ToUpper(c.Type)
	var params []string
	for _, p := range c.Params {
		params = append(params, fmt.Sprint(p))
	}
	params = append(params, c.Members...)
	if len(params) > 0 {
		t += "(" + strings.Join(params, ", ") + ")"
	}
	if c.Unsigned {
		t += " unsigned"
	}
	return t
}

func (c Column) defaultText() string {
	switch {
	case c.UseCurrent:
		return "CURRENT_TIMESTAMP"
	case c.DefaultExpr != "":
		return c.DefaultExpr
	case c.DefaultNull:
		return "NULL"
	case c.Default != nil:
		return fmt.Sprintf("`%v`", c.Default)
	}
	return ""
}

func (c Column) notes() string {
	var n []string
	if c.AutoIncrement {
		n = append(n, "auto increment")
	}
	if c.Rename != "" {
		n = append(n, "renamed to `"+c.Rename+"`")
	}
	if c.Modify {
		n = append(n, "modified")
	}
	if c.Comment != "" {
		n = append(n, c.Comment)
	}
	return strings.Join(n, "; ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func codeList(items []string) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "`" + s + "`"
	}
	return strings.Join(out, ", ")
}
