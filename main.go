package main

import (
	"os"

	"github.com/its-adityagoyal/JobSummarizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
