// @title Kuber Todo API
// @version 1.0
// @description CRUD API for todo items backed by MongoDB
// @BasePath /
// @schemes http
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/xyz-asif/kubertodo/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
