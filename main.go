package main

import (
	"os"

	"github.com/sciencemesh/sciencemesh-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
