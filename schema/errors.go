package schema

import "errors"

// ErrMigrationUsage, tüm MigrationError değerlerinin eşlendiği sentinel hatadır.
var ErrMigrationUsage = errors.New("sqlforge: invalid blueprint operation")

// MigrationError, yapısal olarak geçersiz bir Blueprint işlemini bildirir;
// örneğin henüz oluşturulan bir tablodan kolon silmek.
type MigrationError struct {
	Op     string
	Table  string
	Column string
	Reason string
}

func (e *MigrationError) Error() string {
	msg := "sqlforge: " + e.Op
	if e.Table != "" {
		msg += " on table '" + e.Table + "'"
	}
	if e.Column != "" {
		msg += " (column '" + e.Column + "')"
	}
	return msg + ": " + e.Reason
}

func (e *MigrationError) Is(target error) bool {
	return target == ErrMigrationUsage
}

func newMigrationError(op, table, column, reason string) *MigrationError {
	return &MigrationError{Op: op, Table: table, Column: column, Reason: reason}
}
