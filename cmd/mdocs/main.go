package main

import (
	"github.com/tacogips/mdocs/internal/cli"
)

func main() {
	cli.Execute()
}
