package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rsahil/equityscope/internal/cli"
	"github.com/rsahil/equityscope/internal/config"
)

func main() {
	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()

	rootCmd := cli.NewRootCmd(cfg)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
