package main

import (
	"os"

	"github.com/VictorTPhan/ella-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
