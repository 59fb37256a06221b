package main

import (
	"log"

	"github.com/finconsgroup/zooadmin/internal/sandbox"
)

func main() {
	cfg := sandbox.LoadConfig()

	application, err := sandbox.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize sandbox: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("sandbox error: %v", err)
	}
}
