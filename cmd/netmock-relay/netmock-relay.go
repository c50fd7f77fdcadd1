package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/netmock/relay"
	"github.com/netmock/relay/internal/application"
	"github.com/netmock/relay/internal/logging"
	"github.com/netmock/relay/internal/version"
)

// netmock-relay runs a standalone relay server, serving mock routes from a
// JSON file. Intercepting processes are pointed at it via the URL it prints.
func main() {
	loggers := logging.MakeDefaultLoggers("Main")

	opts, err := application.ReadOptions(os.Args, os.Stderr)
	if err != nil {
		loggers.Errorf("Error: %s", err)
		os.Exit(1)
	}

	loggers.Infof("Starting netmock relay version %s with %s",
		application.DescribeVersion(version.Version), opts.DescribeConfigSource())

	c, err := application.LoadConfig(opts, loggers)
	if err != nil {
		loggers.Errorf("Error loading configuration: %s", err)
		os.Exit(1)
	}

	r, err := relay.NewRelay(c)
	if err != nil {
		loggers.Errorf("Unable to create relay: %s", err)
		os.Exit(1)
	}

	url, err := r.Listen()
	if err != nil {
		loggers.Errorf("Unable to start relay: %s", err)
		os.Exit(1)
	}

	fmt.Println(url)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	loggers.Info("Shutting down")
	_ = r.Close()
}
