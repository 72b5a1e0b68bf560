// Package validation, derleyicinin ürettiği SQL metnine giren tablo, kolon,
// index ve alias isimlerini ve WHERE operatörlerini doğrular.
//
// Grammar katmanı her identifier'ı backtick ile sarmadan önce buraya sorar;
// böylece değer olarak bağlanamayan (placeholder kullanılamayan) her parça
// beyaz liste üzerinden geçmiş olur.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package validation

import (
	"errors"
	"regexp"
	"strings"
)

// MaxIdentifierLength, MySQL'in tablo/kolon/index isimleri için izin verdiği
// en uzun değerdir.
const MaxIdentifierLength = 64

// ErrInvalidIdentifier, tüm identifier hatalarının errors.Is ile eşlendiği sentinel hatadır.
var ErrInvalidIdentifier = errors.New("sqlforge: invalid SQL identifier")

// identifierRegex, en fazla iki noktaya (schema.table.column) izin verir.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_$]*(\.[a-zA-Z_][a-zA-Z0-9_$]*){0,2}$`)

// aliasRegex, "table as alias" veya "table alias" formatlarını eşler.
var aliasRegex = regexp.MustCompile(`(?i)^([a-zA-Z_][a-zA-Z0-9_$.]*)\s+(?:as\s+)?([a-zA-Z_][a-zA-Z0-9_$]*)$`)

// ValidateIdentifier, verilen identifier'ın geçerli olup olmadığını kontrol eder.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{Identifier: id, Reason: "identifier cannot be empty"}
	}

	for _, part := range strings.Split(id, ".") {
		if len(part) > MaxIdentifierLength {
			return &IdentifierError{
				Identifier: id,
				Reason:     "identifier exceeds maximum length of 64 characters",
			}
		}
	}

	if !identifierRegex.MatchString(id) {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier contains invalid characters; only letters, numbers, underscores, dollar signs and dots are allowed",
		}
	}

	return nil
}

// ValidateTableWithAlias, "table", "table alias" ve "table as alias"
// biçimlerini ayrıştırır ve her iki parçayı da doğrular.
func ValidateTableWithAlias(table string) (name, alias string, err error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", "", &IdentifierError{Identifier: table, Reason: "table name cannot be empty"}
	}

	if m := aliasRegex.FindStringSubmatch(table); m != nil {
		if err := ValidateIdentifier(m[1]); err != nil {
			return "", "", err
		}
		if err := ValidateIdentifier(m[2]); err != nil {
			return "", "", &IdentifierError{Identifier: m[2], Reason: "invalid alias"}
		}
		return m[1], m[2], nil
	}

	if err := ValidateIdentifier(table); err != nil {
		return "", "", err
	}
	return table, "", nil
}

// IdentifierError, identifier doğrulama hatasını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "sqlforge: invalid identifier: " + e.Reason
	}
	return "sqlforge: invalid identifier '" + e.Identifier + "': " + e.Reason
}

// Is, errors.Is(err, ErrInvalidIdentifier) kontrolünü destekler.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}
