package sqlite

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// unicodeLowerFunc is the SQL name of a lower() that folds every Unicode
// letter. The built-in lower() only folds ASCII, so "SALÁRIO" would not
// match "salário".
const unicodeLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
