// huepick - dominant colour extraction and colour naming
//
// huepick samples the dominant colours of product photos and resolves
// colours to the names a shop uses for them.
package main

import "github.com/jmylchreest/huepick/internal/cli"

func main() {
	cli.Execute()
}
