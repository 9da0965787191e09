package main

import (
	"context"

	"cpolar-export/cmd/cpolar-export/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
