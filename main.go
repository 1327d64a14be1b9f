package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/mongolens/config"
	"github.com/haguru/mongolens/internal/app"
)

func main() {
	configPath := flag.String("config", config.CONFIG_PATH, "path to the YAML configuration file")
	envFile := flag.String("env", ".env", "optional dotenv file with MONGOLENS_ overrides")
	mintToken := flag.String("mint-token", "", "print a bearer token for the given operator and exit")
	genKey := flag.Bool("gen-key", false, "with -mint-token, create the signing key if it does not exist")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *mintToken != "" {
		token, err := app.MintToken(cfg, *mintToken, *genKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
