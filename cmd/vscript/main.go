// Command vscript is the VScript interpreter's entry point.
package main

import (
	"fmt"
	"os"

	"vscript/cmd/vscript/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "致命错误：", r)
			os.Exit(1)
		}
	}()
	os.Exit(cmd.Execute())
}
