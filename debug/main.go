package main

import (
	"os"

	"github.com/blacksmith/atlas/internal/server"
)

func main() {
	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	err := server.Start(httpPort)
	if err != nil {
		return
	}
}
