package iodb

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gnames/symbdb/pkg/config"
	"gopkg.in/ini.v1"
)

// ReadCredentials reads the [client] section of a MySQL option file
// (like ~/.my.cnf) and converts host, port, user and password to config
// options. A missing file is not an error, it gives no options.
func ReadCredentials(path string) ([]config.Option, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	// option files have flags without values and '#' inside passwords
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}, path)
	if err != nil {
		return nil, CredentialsFileError(path, err)
	}

	sec := f.Section("client")
	var res []config.Option
	if s := sec.Key("host").String(); s != "" {
		res = append(res, config.OptSourceHost(unquote(s)))
	}
	if i := sec.Key("port").MustInt(0); i > 0 {
		res = append(res, config.OptSourcePort(i))
	}
	if s := sec.Key("user").String(); s != "" {
		res = append(res, config.OptSourceUser(unquote(s)))
	}
	if s := sec.Key("password").String(); s != "" {
		res = append(res, config.OptSourcePassword(unquote(s)))
	}
	return res, nil
}

// unquote removes quotes MySQL allows around option values.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
