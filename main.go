package main

import (
	"context"

	"github.com/visiond/visiond/cmd"
)

func main() {
	cmd.NewCLI().ExecuteContext(context.Background())
}
