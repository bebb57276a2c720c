package iodump_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func ints(t *testing.T, db *sql.DB, q string) []int64 {
	t.Helper()
	rows, err := db.Query(q)
	require.NoError(t, err)
	defer rows.Close()

	var res []int64
	for rows.Next() {
		var i int64
		require.NoError(t, rows.Scan(&i))
		res = append(res, i)
	}
	require.NoError(t, rows.Err())
	return res
}
