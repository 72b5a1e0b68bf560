package validation

import (
	"errors"
	"strings"
)

// ErrInvalidOperator, beyaz listede olmayan operatörler için sentinel hatadır.
var ErrInvalidOperator = errors.New("sqlforge: invalid SQL operator")

// allowedOperators, WHERE yüklemlerinde kullanılabilecek operatörler.
// Anahtarlar normalize edilmiş (büyük harf, kırpılmış) biçimdedir.
var allowedOperators = map[string]bool{
	"=":  true,
	"<":  true,
	">":  true,
	"!=": true,
	"<>": true,
	"<=": true,
	">=": true,

	// MySQL NULL güvenli eşitliği
	"<=>": true,

	"&": true,
	"|": true,
	"^": true,

	"LIKE":       true,
	"NOT LIKE":   true,
	"REGEXP":     true,
	"NOT REGEXP": true,

	"IS":     true,
	"IS NOT": true,

	"IN":          true,
	"NOT IN":      true,
	"BETWEEN":     true,
	"NOT BETWEEN": true,
}

// NormalizeOperator, operatörü SQL metnine yazılacak biçime getirir.
// Tek karakterli operatörler olduğu gibi geçer; anahtar kelime operatörleri
// kırpılır, büyük harfe çevrilir ve aradaki boşluklar teke indirilir.
func NormalizeOperator(op string) (string, error) {
	if len(op) == 1 {
		if !allowedOperators[op] {
			return "", &OperatorError{Operator: op, Reason: "operator not in allowed list"}
		}
		return op, nil
	}

	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))
	if !allowedOperators[normalized] {
		return "", &OperatorError{Operator: op, Reason: "operator not in allowed list"}
	}
	return normalized, nil
}

// ValidateOperator, operatörün izin verilen listede olup olmadığını kontrol eder.
func ValidateOperator(op string) error {
	_, err := NormalizeOperator(op)
	return err
}

// IsNullOperator, IS / IS NOT için true döner.
func IsNullOperator(op string) bool {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))
	return normalized == "IS" || normalized == "IS NOT"
}

// IsRangeOperator, BETWEEN / NOT BETWEEN için true döner.
func IsRangeOperator(op string) bool {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))
	return normalized == "BETWEEN" || normalized == "NOT BETWEEN"
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

func (e *OperatorError) Error() string {
	return "sqlforge: invalid operator '" + e.Operator + "': " + e.Reason
}

// Is, errors.Is(err, ErrInvalidOperator) kontrolünü destekler.
func (e *OperatorError) Is(target error) bool {
	return target == ErrInvalidOperator
}
