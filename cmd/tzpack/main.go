package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"github.com/arloliu/tzpack/cmd/tzpack/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
