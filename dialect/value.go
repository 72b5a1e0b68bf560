package dialect

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Value, bir komuta verilen değerin derleyicideki karşılığıdır. Dört biçimi vardır:
//
//	Literal  parametre olarak bağlanır, "?" yazılır
//	Raw      SQL metnine olduğu gibi gömülür
//	Func     NAME(arg, ...) biçiminde, argümanları özyineli derlenir
//	List     (item, ...) biçiminde, IN listeleri için
//
// Sınıflandırma API sınırında bir kez (ValueOf) yapılır; grammar yalnızca
// tipe bakar.
type Value interface {
	isValue()
}

// Literal, tek bir bağlanan parametredir.
type Literal struct {
	V any
}

// Raw, SQL metnine aynen yazılan bir ifadedir. Bindings boş değilse ifadenin
// içindeki "?" yer tutucularının değerleridir.
type Raw struct {
	SQL      string
	Bindings []any
}

// Func, bir SQL fonksiyon çağrısıdır.
type Func struct {
	Name string
	Args []Value
}

// List, parantez içinde virgülle ayrılmış değerler listesidir.
type List struct {
	Items []Value
}

func (Literal) isValue() {}
func (Raw) isValue()     {}
func (Func) isValue()    {}
func (List) isValue()    {}

// rawHeadRegex, NAME( başlığını tanır; eşleşen parantezi callParens bulur.
var rawHeadRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// rawReservedWords, fonksiyon adı olarak kabul edilmeyen kelimeler.
var rawReservedWords = map[string]bool{
	"AND": true, "OR": true, "XOR": true, "NOT": true,
	"SELECT": true, "UNION": true, "FROM": true, "WHERE": true,
}

// rawForbiddenWords, parantez içinde bile alt sorgu açan kelimeler.
var rawForbiddenWords = map[string]bool{"SELECT": true, "UNION": true}

// functionNameRegex, Func.Name için izin verilen karakterler.
var functionNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsRawExpression, s'nin NOW(), RAND() veya COUNT(*) gibi tek bir fonksiyon
// çağrısı olup olmadığını bildirir. İlk "(" ile eşleşen ")" metnin son
// karakteri olmalıdır; "a() OR b()" gibi birden fazla parça ham ifade sayılmaz.
// İfade ayırıcı (;), yorum (--, /*, #) veya alt sorgu (SELECT, UNION) içeren
// metinler de reddedilir.
func IsRawExpression(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ";#") || strings.Contains(s, "--") || strings.Contains(s, "/*") {
		return false
	}
	m := rawHeadRegex.FindStringSubmatchIndex(s)
	if m == nil || rawReservedWords[strings.ToUpper(s[m[2]:m[3]])] {
		return false
	}
	inner, ok := callParens(s, m[1]-1)
	if !ok {
		return false
	}
	for _, w := range bareWords(inner) {
		if rawForbiddenWords[strings.ToUpper(w)] {
			return false
		}
	}
	return true
}

// callParens, s[open] konumundaki "(" ile eşleşen ")" s'nin son karakteriyse
// aradaki metni döndürür. Tırnak içindeki parantezler sayılmaz.
func callParens(s string, open int) (string, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\'', '"', '`':
			end := closingQuote(s, i)
			if end < 0 {
				return "", false
			}
			i = end
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if i != len(s)-1 {
					return "", false
				}
				return s[open+1 : i], true
			}
		}
	}
	return "", false
}

// closingQuote, s[start]'taki tırnağı kapatan indeksi döndürür; bulunamazsa -1.
// Ters bölü kaçışı ve çift tırnak ('') desteklenir.
func closingQuote(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i
		}
	}
	return -1
}

// bareWords, tırnak dışındaki kelimeleri döndürür.
func bareWords(s string) []string {
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			words = append(words, s[start:end])
			start = -1
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			flush(i)
			end := closingQuote(s, i)
			if end < 0 {
				return words
			}
			i = end
		case c == '_' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			if start < 0 {
				start = i
			}
		default:
			flush(i)
		}
	}
	flush(len(s))
	return words
}

// Lit, v'yi zorla Literal olarak sarar. "NOW()" gibi görünen bir metnin
// parametre olarak bağlanması gerektiğinde kullanılır.
func Lit(v any) Literal {
	return Literal{V: v}
}

// RawSQL, ham bir SQL parçası oluşturur.
func RawSQL(sql string, bindings ...any) Raw {
	return Raw{SQL: sql, Bindings: bindings}
}

// Fn, name(args...) çağrısını oluşturur; argümanlar ValueOf ile sınıflandırılır.
func Fn(name string, args ...any) Func {
	f := Func{Name: name, Args: make([]Value, 0, len(args))}
	for _, a := range args {
		f.Args = append(f.Args, ValueOf(a))
	}
	return f
}

// ValueOf, Go değerini Value modeline çevirir.
//
//	"NOW()"                 -> Raw{"NOW()"}
//	[]any{"NOW()", 10, 20}  -> Func{"NOW", [?, ?]}
//	[]int{1, 2, 3}          -> List{?, ?, ?}
//	diğer her şey           -> Literal
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case nil:
		return Literal{V: nil}
	case string:
		if IsRawExpression(x) {
			return Raw{SQL: strings.TrimSpace(x)}
		}
		return Literal{V: x}
	case []byte:
		return Literal{V: x}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return Literal{V: v}
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	if len(items) > 0 {
		if head, ok := items[0].(string); ok && IsRawExpression(head) {
			name, inner := splitCall(head)
			if strings.TrimSpace(inner) != "" {
				return invalidValue{err: &CompileError{Message: "function head " + strconv.Quote(head) +
					" must have empty parentheses when arguments follow"}}
			}
			return Fn(name, items[1:]...)
		}
	}

	list := List{Items: make([]Value, len(items))}
	for i, item := range items {
		list.Items[i] = ValueOf(item)
	}
	return list
}

// splitCall, "DATE_ADD(x, y)" gibi bir çağrıyı ada ve parantez içine ayırır.
func splitCall(head string) (name, inner string) {
	head = strings.TrimSpace(head)
	i := strings.IndexByte(head, '(')
	if i < 0 {
		return head, ""
	}
	return strings.TrimSpace(head[:i]), head[i+1 : len(head)-1]
}

// invalidValue, ValueOf'un sınıflandıramadığı bir girdiyi taşır; derleme
// sırasında err döner.
type invalidValue struct {
	err error
}

func (invalidValue) isValue() {}
