package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		msg    string
		err    error
		code   gn.ErrorCode
		text   string
		path   string
		errStr string
	}{
		{"create dir", CreateDirError("/home/u/.cache/symbdb", cause),
			errcode.CreateDirError, "Cannot create", "/home/u/.cache/symbdb",
			"cannot create directory"},
		{"copy template", CopyFileError("/home/u/.config/symbdb/regions.yaml", cause),
			errcode.CopyFileError, "template file", "/home/u/.config/symbdb/regions.yaml",
			"cannot copy file"},
		{"read file", ReadFileError("/home/u/.config/symbdb/config.yaml", cause),
			errcode.ReadFileError, "Cannot read", "/home/u/.config/symbdb/config.yaml",
			"cannot read /home/u/.config/symbdb/config.yaml"},
		{"regions file", RegionsFileError("/home/u/.config/symbdb/regions.yaml", cause),
			errcode.RegionsFileError, "'countries' and 'states'",
			"/home/u/.config/symbdb/regions.yaml", "cannot parse"},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Contains(t, gnErr.Msg, v.text, v.msg)
		assert.Equal(t, []any{v.path}, gnErr.Vars, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		assert.Contains(t, gnErr.Err.Error(), v.errStr, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "from ", v.msg)
	}
}
