package main

import (
	"os"

	"meetlens/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
