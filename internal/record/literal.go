package record

import (
	"math"
	"strconv"
	"strings"
)

// ParseLiteral converts one SQL literal token into a typed Value.
//
// Rules, in order: case-insensitive NULL; quoted text (single or double
// quotes, doubled quotes unescaped); case-insensitive TRUE/FALSE; text
// containing '.' that parses as a finite number becomes FLOAT; text parsing
// as an integer becomes INT; anything else is kept as raw TEXT.
func ParseLiteral(text string) Value {
	s := strings.TrimSpace(text)
	up := strings.ToUpper(s)

	if up == "NULL" {
		return Null()
	}

	if len(s) >= 2 {
		if q := s[0]; (q == '\'' || q == '"') && s[len(s)-1] == q {
			inner := s[1 : len(s)-1]
			inner = strings.ReplaceAll(inner, string([]byte{q, q}), string(q))
			return NewText(inner)
		}
	}

	if up == "TRUE" {
		return NewBool(true)
	}
	if up == "FALSE" {
		return NewBool(false)
	}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return NewFloat(f)
		}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i)
	}

	return NewText(s)
}

// typeSynonyms maps declared SQL type tokens onto the five storage types.
var typeSynonyms = map[string]ColumnType{
	"INTEGER": TypeInteger, "INT": TypeInteger, "BIGINT": TypeInteger, "SMALLINT": TypeInteger,
	"VARCHAR": TypeText, "CHAR": TypeText, "STRING": TypeText, "TEXT": TypeText,
	"REAL": TypeFloat, "DOUBLE": TypeFloat, "FLOAT": TypeFloat, "DECIMAL": TypeFloat, "NUMERIC": TypeFloat,
	"BOOLEAN": TypeBoolean, "BOOL": TypeBoolean,
	"BLOB": TypeBlob, "BYTES": TypeBlob, "BINARY": TypeBlob,
}

// NormalizeType folds a declared column type onto its storage type.
// Unrecognized tokens pass through unchanged.
func NormalizeType(token string) ColumnType {
	if t, ok := typeSynonyms[strings.ToUpper(strings.TrimSpace(token))]; ok {
		return t
	}
	return ColumnType(token)
}
