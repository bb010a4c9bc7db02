package main

import (
	"context"
	"log"

	"github.com/AndyCHK/giphy-api-app/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("giphy api: %v", err)
	}
}
