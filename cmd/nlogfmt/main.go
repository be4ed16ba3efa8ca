// Command nlogfmt renders log records through spdlog-style patterns.
//
//	nlogfmt render -p "[%H:%M:%S.%e] [%n] [%l] %v" -n api "server started"
//	tail -f app.jsonl | nlogfmt render --json -p "%T %L %v"
//	nlogfmt explain "%Y-%m-%d %v"
package main

import (
	"os"

	"github.com/philipp01105/patternlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
