// dedup finds near-duplicate rows in CSV, Excel and SQLite tables.
package main

import (
	"os"

	"dedup-service/cmd/dedup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
