package main

import (
	"context"
	"log"
	"os"

	"github.com/aipapergrader/papergrader/internal/buildinfo"
	"github.com/aipapergrader/papergrader/internal/client/cli"
	"github.com/aipapergrader/papergrader/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
