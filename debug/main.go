package main

import (
	"github.com/seoworks/indexable/internal/server"
	"os"
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
