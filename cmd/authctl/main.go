package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/codeblaze/portal/cmd/authctl/commands"
)

func main() {
	_ = godotenv.Load()

	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
