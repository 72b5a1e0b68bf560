package sqlforge

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

//
// =====================================================================================
// SQLFORGE – SCANNER BİRİMİ
// -------------------------------------------------------------------------------------
// SELECT sonuçlarını Go tiplerine aktaran satır eşleme kancasıdır (row-mapping hook).
// Get ve First bu arayüz üzerinden çalışır; WithScanner ile değiştirilebilir.
//
// DefaultScanner:
//   1. Struct alanlarını reflection ile tarar
//   2. `db:"column"` tag'lerine göre kolon–alan eşlemesi kurar
//   3. Sonucu tip başına cache'ler
//   4. Hedef Row veya []Row ise satırları kolon adı -> değer map'ine yazar
//
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================
//

// Scanner, veritabanından okunan satırları Go değerlerine aktaran sözleşmedir.
type Scanner interface {
	// ScanRows, tüm satırları dest'e (*[]T, *[]*T veya *[]Row) ekler.
	ScanRows(rows *sql.Rows, dest any) error

	// ScanOne, ilk satırı dest'e (*T veya *Row) yazar. Satır yoksa ErrNoRows döner.
	ScanOne(rows *sql.Rows, dest any) error
}

// DefaultScanner, `db` tag'leriyle eşleme yapan standart tarayıcıdır.
type DefaultScanner struct {
	cache sync.Map // reflect.Type -> *structInfo
}

// NewDefaultScanner, varsayılan scanner oluşturur.
func NewDefaultScanner() *DefaultScanner {
	return &DefaultScanner{}
}

type structInfo struct {
	fields  []fieldInfo
	columns map[string]int
}

type fieldInfo struct {
	index []int
	name  string
}

var rowType = reflect.TypeOf(Row{})

// ScanRows, rows sonuç kümesini slice'a aktarır. rows her durumda kapatılır.
func (s *DefaultScanner) ScanRows(rows *sql.Rows, dest any) error {
	if rows == nil {
		return ErrNoRows
	}
	defer rows.Close()

	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNotAPointer
	}
	sliceVal := v.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return ErrNotASlice
	}

	elemType := sliceVal.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr {
		elemType = elemType.Elem()
	}
	if elemType != rowType && elemType.Kind() != reflect.Struct {
		return ErrNotAStruct
	}

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("sqlforge: read columns: %w", err)
	}

	for rows.Next() {
		elemVal := reflect.New(elemType).Elem()
		if err := s.scanInto(rows, columns, elemVal); err != nil {
			return err
		}
		if isPtr {
			sliceVal.Set(reflect.Append(sliceVal, elemVal.Addr()))
		} else {
			sliceVal.Set(reflect.Append(sliceVal, elemVal))
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlforge: rows iteration: %w", err)
	}
	return nil
}

// ScanOne, ilk satırı dest'e yazar. rows her durumda kapatılır.
func (s *DefaultScanner) ScanOne(rows *sql.Rows, dest any) error {
	if rows == nil {
		return ErrNoRows
	}
	defer rows.Close()

	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNotAPointer
	}
	elem := v.Elem()
	if elem.Type() != rowType && elem.Kind() != reflect.Struct {
		return ErrNotAStruct
	}

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("sqlforge: read columns: %w", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("sqlforge: rows iteration: %w", err)
		}
		return ErrNoRows
	}
	return s.scanInto(rows, columns, elem)
}

// scanInto, mevcut satırı bir struct'a veya Row'a yazar.
func (s *DefaultScanner) scanInto(rows *sql.Rows, columns []string, target reflect.Value) error {
	if target.Type() == rowType {
		row, err := scanRow(rows, columns)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(row))
		return nil
	}

	info := s.getStructInfo(target.Type())
	scanDests := make([]any, len(columns))
	for i, col := range columns {
		idx, ok := info.columns[strings.ToLower(col)]
		if !ok {
			var ignore any
			scanDests[i] = &ignore
			continue
		}
		scanDests[i] = target.FieldByIndex(info.fields[idx].index).Addr().Interface()
	}

	if err := rows.Scan(scanDests...); err != nil {
		return fmt.Errorf("sqlforge: scan row: %w", err)
	}
	return nil
}

// scanRow, mevcut satırı kolon adı -> değer map'ine okur. []byte değerler
// kopyalanır çünkü sürücü tamponu bir sonraki Next çağrısında yeniden kullanır.
func scanRow(rows *sql.Rows, columns []string) (Row, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("sqlforge: scan row: %w", err)
	}

	row := make(Row, len(columns))
	for i, col := range columns {
		if b, ok := values[i].([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
		row[col] = values[i]
	}
	return row, nil
}

// getStructInfo, struct metadata'sını cache'den okur veya üretir.
func (s *DefaultScanner) getStructInfo(t reflect.Type) *structInfo {
	if cached, ok := s.cache.Load(t); ok {
		return cached.(*structInfo)
	}

	info := &structInfo{
		fields:  make([]fieldInfo, 0),
		columns: make(map[string]int),
	}
	s.parseStruct(t, nil, info)
	s.cache.Store(t, info)
	return info
}

// parseStruct, gömülü struct'lar dahil tüm dışa açık alanları tarar.
func (s *DefaultScanner) parseStruct(t reflect.Type, index []int, info *structInfo) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			s.parseStruct(field.Type, fieldIndex, info)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}

		name := strings.ToLower(field.Name)
		if tag != "" {
			name, _, _ = strings.Cut(tag, ",")
		}

		info.columns[strings.ToLower(name)] = len(info.fields)
		info.fields = append(info.fields, fieldInfo{index: fieldIndex, name: name})
	}
}
