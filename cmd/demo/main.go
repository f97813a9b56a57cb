// Command demo drives the text-field screen from the terminal.
//
// Every input line is typed into the field. Lines starting with a colon are
// commands:
//
//	:settings     push the settings screen
//	:color NAME   choose a background color on the settings screen
//	:bg NAME      push a background color straight into the screen
//	:back         dismiss the settings screen
//	:quit         exit
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/reactorx/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	settle := flag.Duration("settle", 200*time.Millisecond, "time to let pending updates render after input ends")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetPrefix(cfg.LogPrefix)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *settle, os.Stdin, os.Stdout, log.Default()); err != nil {
		log.Fatalf("demo: %v", err)
	}
}
