package main

import (
	"github.com/seqslice/seqslice/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
