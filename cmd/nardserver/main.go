// Command nardserver runs the nardy move engine REST API server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/nardengine/pkg/api"
	"github.com/yourusername/nardengine/pkg/engine"
)

const version = "0.1.0"

func main() {
	defaults := api.DefaultConfig()

	host := flag.String("host", defaults.Host, "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", defaults.Port, "Port to listen on")
	readTimeout := flag.Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	maxWorkers := flag.Int("max-workers", defaults.MaxWorkers, "Max concurrent engine queries")
	cacheSize := flag.Int("cache-size", engine.DefaultCacheSize, "Move cache entries (negative disables the cache)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("nardserver v%s\n", version)
		os.Exit(0)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	eng := engine.NewEngine(engine.EngineOptions{CacheSize: *cacheSize})
	log.Info().Int("cache_size", *cacheSize).Msg("engine ready")

	config := api.ServerConfig{
		Host:         *host,
		Port:         *port,
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
		IdleTimeout:  defaults.IdleTimeout,
		MaxWorkers:   *maxWorkers,
	}

	server := api.NewServer(eng, config, version)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
