// Command activitylog consumes event activity from RabbitMQ and appends a
// line per notification to ACTIVITY_LOG_PATH.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/iliyamo/movienight/internal/config"
	"github.com/iliyamo/movienight/internal/queue"
)

func main() {
	log.SetPrefix("[activitylog] ")
	rc := config.LoadRabbitConfig()
	if rc.URL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: rc.URL, Exchange: rc.Exchange, Queue: rc.Queue, LogPath: rc.LogPath}
	log.Printf("queue %s bound to %s, writing %s", rc.Queue, rc.Exchange, rc.LogPath)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
	log.Printf("stopped")
}
