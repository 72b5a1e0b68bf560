// Package sqltest, gerçek bir MySQL sunucusu olmadan database/sql üzerinden
// test yazmak için go-sqlmock bağlantısı hazırlar.
package sqltest

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// VersionQuery, DB.DetectServerVersion'ın gönderdiği ifadedir.
const VersionQuery = "SELECT VERSION();"

// New, ifadeleri birebir karşılaştıran bir sqlmock bağlantısı açar. Test
// bittiğinde tüm beklentilerin karşılandığı doğrulanır.
func New(t testing.TB) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return db, mock
}

// ExpectVersion, sunucu sürümü sorgusunu v ile cevaplar.
func ExpectVersion(mock sqlmock.Sqlmock, v string) {
	mock.ExpectQuery(VersionQuery).WillReturnRows(sqlmock.NewRows([]string{"VERSION()"}).AddRow(v))
}
