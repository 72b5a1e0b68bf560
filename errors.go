package sqlforge

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/biyonik/go-sqlforge/dialect"
	"github.com/biyonik/go-sqlforge/internal/validation"
	"github.com/biyonik/go-sqlforge/schema"
)

// go-sqlforge'un sentinel hataları.
// errors.Is() ile kontrol edilebilirler.
var (
	// ErrBuilderUsage, tüm UsageError değerleriyle eşleşir: seçili komut yok,
	// ikinci bir komut seçildi, komut adı bilinmiyor ya da argüman sayısı yanlış.
	ErrBuilderUsage = errors.New("sqlforge: invalid builder usage")

	// ErrDatabase, sürücü sınırından dönen tüm DatabaseError değerleriyle eşleşir.
	ErrDatabase = errors.New("sqlforge: database error")

	// ErrNoRows, sorgu hiç satır döndürmediğinde döner.
	ErrNoRows = errors.New("sqlforge: no rows in result set")

	// ErrNoExecutor, yalnızca SQL derleyen New ile oluşturulmuş builder'da
	// Exec ve okuma metotları çağrıldığında döner.
	ErrNoExecutor = errors.New("sqlforge: builder has no executor")

	// ErrNotAPointer, tarama hedefi nil olmayan bir pointer değilse döner.
	ErrNotAPointer = errors.New("sqlforge: destination must be a non-nil pointer")

	// ErrNotASlice, ScanRows slice olmayan bir pointer aldığında döner.
	ErrNotASlice = errors.New("sqlforge: destination must be a pointer to a slice")

	// ErrNotAStruct, hedef slice'ın elemanı struct veya Row değilse döner.
	ErrNotAStruct = errors.New("sqlforge: destination element must be a struct or Row")
)

// Builder'ın iş devrettiği paketlerin hataları; çağıranın yalnızca sqlforge'u
// import etmesi yetsin diye burada da yayınlanır.
var (
	ErrInvalidIdentifier = validation.ErrInvalidIdentifier
	ErrInvalidOperator   = validation.ErrInvalidOperator
	ErrCompile           = dialect.ErrCompile
	ErrMigrationUsage    = schema.ErrMigrationUsage
	ErrUnsupported       = dialect.ErrUnsupported
)

// Builder kullanım hataları. Her biri ErrBuilderUsage ile eşleşir.
var (
	ErrNoCommand              = &UsageError{Reason: "no command selected"}
	ErrCommandAlreadySelected = &UsageError{Reason: "a command is already selected"}
	ErrUnknownCommand         = &UsageError{Reason: "unknown command"}
	ErrInvalidArguments       = &UsageError{Reason: "wrong number of arguments"}
)

// UsageError, builder'ın yanlış kullanımından doğan programlama hatasını bildirir.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Op == "" {
		return "sqlforge: " + e.Reason
	}
	return "sqlforge: " + e.Op + ": " + e.Reason
}

func (e *UsageError) Is(target error) bool {
	return target == ErrBuilderUsage
}

func newUsageError(op, reason string) *UsageError {
	return &UsageError{Op: op, Reason: reason}
}

// DatabaseError, executor'dan gelen hatayı onu tetikleyen ifadeyle birlikte
// sarar. Sürücü bir MySQL hata kodu bildirdiyse Number onu taşır (örn.
// tekrarlanan anahtar için 1062).
type DatabaseError struct {
	Op     string
	Query  string
	Args   []any
	Number uint16
	Err    error
}

func (e *DatabaseError) Error() string {
	return "sqlforge: " + e.Op + ": " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabase
}

// NewDatabaseError, err'i sorgu bağlamıyla sarar.
func NewDatabaseError(op, query string, args []any, err error) *DatabaseError {
	dbErr := &DatabaseError{Op: op, Query: query, Args: args, Err: err}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		dbErr.Number = myErr.Number
	}
	return dbErr
}

// IsDuplicateEntry, err'in MySQL tekrarlanan anahtar hatası (1062) olup
// olmadığını bildirir.
func IsDuplicateEntry(err error) bool {
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) && dbErr.Number != 0 {
		return dbErr.Number == 1062
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
