// Package ui, sqlforge komut satırı aracının terminal çıktısını üretir:
// renkli SQL, durum mesajları, sonuç tabloları ve markdown belgeleri.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/biyonik/go-sqlforge"
)

var (
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	TitleStyle   = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(PrimaryColor)
	MutedStyle   = lipgloss.NewStyle().Foreground(SecondaryColor)
)

// Printer, tüm çıktıyı Out ve Err üzerinden yazar. NoColor açıkken hiçbir
// kaçış dizisi üretilmez.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
	// Width, markdown satır genişliğidir; 0 ise terminal genişliği.
	Width int

	param *color.Color
}

// New, standart çıktılara yazan bir Printer döndürür.
func New(noColor bool) *Printer {
	return NewPrinter(os.Stdout, os.Stderr, noColor)
}

func NewPrinter(out, errOut io.Writer, noColor bool) *Printer {
	p := &Printer{
		Out:     out,
		Err:     errOut,
		NoColor: noColor,
		param:   color.New(color.FgYellow),
	}
	if noColor {
		p.param.DisableColor()
	}
	return p
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.NoColor {
		return s
	}
	return style.Render(s)
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, p.render(SuccessStyle, "✓ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.Err, p.render(ErrorStyle, "✗ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.Out, p.render(WarningStyle, "⚠ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Out, p.render(InfoStyle, "ℹ "+fmt.Sprintf(format, args...)))
}

// Title, kalın bir başlık satırı yazar.
func (p *Printer) Title(title string) {
	fmt.Fprintln(p.Out, p.render(TitleStyle, title))
}

// KeyValue, hizalı "anahtar: değer" satırları yazar. Sıra korunur.
func (p *Printer) KeyValue(pairs [][2]string) {
	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv[0]))
	}
	for _, kv := range pairs {
		key := fmt.Sprintf("%-*s", width, kv[0])
		fmt.Fprintf(p.Out, "%s  %s\n", p.render(MutedStyle, key), kv[1])
	}
}

// SQL, derlenmiş ifadeyi anahtar kelimeleri renklendirerek yazar. args
// boş değilse parametreler ayrı bir satırda listelenir.
func (p *Printer) SQL(sql string, args []any) {
	fmt.Fprintln(p.Out, p.HighlightSQL(sql))
	if len(args) == 0 {
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.param.Sprintf("%d: %#v", i+1, a)
	}
	fmt.Fprintln(p.Out, p.render(MutedStyle, "-- params")+" "+strings.Join(parts, ", "))
}

// SQLStyle, HighlightSQL'in kullandığı chroma stilidir.
var SQLStyle = "monokai"

// HighlightSQL, ifadeyi chroma'nın MySQL lexer'ı ile 256 renkli terminal
// çıktısına çevirir. Renklendirme başarısız olursa metin olduğu gibi döner.
func (p *Printer) HighlightSQL(sql string) string {
	if p.NoColor {
		return sql
	}

	var b strings.Builder
	if err := quick.Highlight(&b, sql, "mysql", "terminal256", SQLStyle); err != nil {
		return sql
	}
	out := b.String()
	if !strings.HasSuffix(sql, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}

// Rows, satırları bir tablo olarak yazar. Kolonlar tüm satırlardaki
// anahtarların birleşimidir ve alfabetik sıralanır.
func (p *Printer) Rows(rows []sqlforge.Row) error {
	if len(rows) == 0 {
		p.Info("no rows")
		return nil
	}

	seen := map[string]bool{}
	var columns []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	data := pterm.TableData{columns}
	for _, r := range rows {
		line := make([]string, len(columns))
		for i, c := range columns {
			line[i] = r.String(c)
		}
		data = append(data, line)
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if p.NoColor {
		plain := pterm.NewStyle()
		table = table.WithStyle(plain).WithHeaderStyle(plain).WithSeparatorStyle(plain)
	}
	out, err := table.Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.Out, out)
	return nil
}

// Markdown, içeriği glamour ile biçimlendirir.
func (p *Printer) Markdown(content string) error {
	width := p.Width
	if width <= 0 {
		width = 80
		if w := pterm.GetTerminalWidth(); w > 0 {
			width = w
		}
	}

	style := glamour.WithAutoStyle()
	if p.NoColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return err
	}
	out, err := r.Render(content)
	if err != nil {
		return err
	}
	fmt.Fprint(p.Out, out)
	return nil
}

// Confirmer, geri dönüşü olmayan işlemler öncesinde onay alır.
type Confirmer interface {
	Confirm(message string, def bool) (bool, error)
}

// SurveyConfirmer, onayı terminalden etkileşimli olarak sorar.
type SurveyConfirmer struct {
	Opts []survey.AskOpt
}

func (s SurveyConfirmer) Confirm(message string, def bool) (bool, error) {
	ok := def
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, s.Opts...); err != nil {
		return false, err
	}
	return ok, nil
}

// AutoConfirm, soru sormadan sabit bir cevap verir (--yes gibi).
type AutoConfirm bool

func (a AutoConfirm) Confirm(string, bool) (bool, error) { return bool(a), nil }
