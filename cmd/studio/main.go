package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/buildinfo"
	"github.com/dmitrijs2005/cyberdoom/internal/cli"
	"github.com/dmitrijs2005/cyberdoom/internal/config"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
