package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/bfir/api"
	"github.com/sarchlab/bfir/ir"
	"github.com/tebeka/atexit"
)

//go:embed hello.bf
var helloSource string

func main() {
	driver := api.MakeDriverBuilder().
		WithOptimize(true).
		Build("Driver")

	result, err := driver.Compile(context.Background(),
		api.Source{Name: "hello.bf", Text: helloSource})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	if err := ir.Format(os.Stdout, result.Code); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	fmt.Printf("%d instructions -> %d instructions\n", result.Raw, len(result.Code))
	atexit.Exit(0)
}
