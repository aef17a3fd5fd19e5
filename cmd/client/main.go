package main

import (
	"context"

	"github.com/Austin-Patrician/eastmoney/internal/client/cli"
	"github.com/Austin-Patrician/eastmoney/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
