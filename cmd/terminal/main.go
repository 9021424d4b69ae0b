package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/buildinfo"
	"github.com/dmitrijs2005/cyberdoom/internal/config"
	"github.com/dmitrijs2005/cyberdoom/internal/genai"
	"github.com/dmitrijs2005/cyberdoom/internal/terminal"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	client := genai.NewGeminiClient(cfg.GenAIEndpoint, cfg.GenAIAPIKey, cfg.GenAIModel)
	defer client.Close()

	app := terminal.NewApp(client, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
