package main

import (
	"context"

	"github.com/igaisin/playwright/cmd/state"
	"github.com/igaisin/playwright/internal/cmd"
)

func main() {
	gs := state.NewGlobalState(context.Background())
	cmd.ExecuteWithGlobalState(gs)
}
