package main

import (
	"context"
	"fmt"
	"os"

	"ctchen222/BookShelf/internal/cli"
)

func main() {
	serverURL := os.Getenv("BOOKSHELF_SERVER")
	if serverURL == "" {
		serverURL = "http://localhost:5001"
	}

	app, err := cli.NewApp(serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
