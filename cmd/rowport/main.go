// Rowport exports tabular result sets from SQL databases as CSV, JSON,
// XML, or Parquet documents. Rows stream from the database through the
// encoder into the output one at a time, so memory use stays flat no
// matter how large the result set is.
//
// Usage:
//
//	# One-shot export to standard output
//	rowport export --driver sqlite --dsn app.db \
//	  --query "SELECT id, name FROM users" --columns id,name
//
//	# Recurring exports on a cron schedule
//	rowport schedule --config rowport.yaml
//
//	# Inspect the supported formats
//	rowport formats
//
//	# Measure encoder throughput
//	rowport benchmark --rows 100000
//
// For complete documentation, see: https://github.com/helios-data/rowport
package main

import (
	"os"

	// SQL drivers available to the source layer. Registration is all
	// they are imported for.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	os.Exit(Execute())
}
