package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskboard/internal/gateway"
	"github.com/dmitrijs2005/taskboard/internal/logging"
)

func main() {

	address := flag.String("a", ":3000", "address and port to listen on")
	backend := flag.String("b", "http://localhost:8080", "backend API server URL")
	flag.Parse()

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	g, err := gateway.New(*address, *backend, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	if err := g.Run(ctx); err != nil {
		logger.Error(ctx, err.Error())
	}
}
