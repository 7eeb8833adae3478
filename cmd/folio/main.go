package main

import (
	"log"

	"github.com/adbrdt/folio/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ folio failed to start: %v", err)
	}
}
