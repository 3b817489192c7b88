package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mambusrl/npsquare-go/cmd/npsquare/cmd"
)

func main() {
	// Optional .env with NPSQUARE_* variables; flags still win.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
