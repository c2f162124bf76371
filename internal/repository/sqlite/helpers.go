package sqlite

import (
	"github.com/Masterminds/squirrel"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
