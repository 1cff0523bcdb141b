package main

import (
	"os"

	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
