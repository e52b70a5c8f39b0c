package main

import (
	"context"
	"os"

	"student-repetition-dashboard/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
