package main

import "github.com/moffa90/go-srec/cmd/srectool/cmd"

func main() {
	cmd.Execute()
}
