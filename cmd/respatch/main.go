package main

import (
	"context"

	"github.com/scott-cotton/cli"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
