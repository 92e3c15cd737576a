package main

import (
	"github.com/campuslink/cli/internal/cmd"
)

func main() {
	cmd.Execute()
}
