package db

import (
	"strconv"

	"github.com/dtnitsch/software-meta-parser/internal/common"
	dbpkg "github.com/dtnitsch/software-meta-parser/pkg/db"
)

// ResolveRecord looks a record up by numeric id or by URL.
func ResolveRecord(arg string, database *dbpkg.DB) (*dbpkg.StoredRecord, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return database.GetRecordByID(id)
	}
	return database.GetRecordByURL(common.SanitizeURL(arg))
}
