// Command lzn statically lints a single MiniZinc model file against a
// fixed catalogue of style, performance, and redundancy rules.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
