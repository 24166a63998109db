package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; the environment alone is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
