// Command edl downloads, unzips, parses, and ingests energy-market
// XML feeds into per-feed SQLite databases.
package main

import "github.com/energy-analytics-project/energy-dashboard-lib/internal/cli"

func main() {
	cli.Execute()
}
