package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError_Structure(t *testing.T) {
	cfg := config.New().Source
	originalErr := errors.New("connection refused")

	err := ConnectionError(cfg, originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SourceConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5,
		"Should have 5 vars: driver, host, port, database, user")
	assert.Equal(t, "mysql", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestUnsupportedDriverError_Structure(t *testing.T) {
	err := UnsupportedDriverError("oracle")

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.SourceUnsupportedDriverError, gnErr.Code)
	assert.Equal(t, []any{"oracle"}, gnErr.Vars)
}

func TestAllErrors_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		code  gn.ErrorCode
		error error
	}{
		{"ConnectionError", errcode.SourceConnectionError,
			ConnectionError(config.SourceConfig{}, originalErr)},
		{"QueryError", errcode.SourceQueryError,
			QueryError("taxa", originalErr)},
		{"ScanError", errcode.SourceScanError,
			ScanError("taxa", originalErr)},
		{"CredentialsFileError", errcode.CredentialsFileError,
			CredentialsFileError("/tmp/.my.cnf", originalErr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr := tt.error.(*gn.Error)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
		})
	}
}
