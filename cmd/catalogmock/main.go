package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"travelagg/internal/catalog"
	"travelagg/pkg/apperr"
	"travelagg/pkg/logger"
)

type options struct {
	port         string
	file         string
	minDelay     time.Duration
	maxDelay     time.Duration
	requireToken bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "catalogmock",
		Short: "Serve a YAML catalog the way the catalog service publishes it",
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(gin.ReleaseMode)
			zlogger := logger.NewZeroLog("development")

			r := gin.New()
			r.Use(gin.Recovery())
			r.GET(catalog.SnapshotPath, SnapshotHandler(opts, zlogger))

			addr := fmt.Sprintf(":%s", opts.port)
			zlogger.Info("Catalog mock server running",
				logger.Field{Key: "addr", Value: addr},
				logger.Field{Key: "file", Value: opts.file},
			)
			return r.Run(addr)
		},
	}

	cmd.Flags().StringVar(&opts.port, "port", "8081", "Listen port")
	cmd.Flags().StringVar(&opts.file, "file", "catalog.yaml", "YAML catalog to serve")
	cmd.Flags().DurationVar(&opts.minDelay, "min-delay", 50*time.Millisecond, "Minimum simulated latency")
	cmd.Flags().DurationVar(&opts.maxDelay, "max-delay", 100*time.Millisecond, "Maximum simulated latency")
	cmd.Flags().BoolVar(&opts.requireToken, "require-token", false, "Reject requests without a bearer token")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SnapshotHandler re-reads the catalog file on every request so edits show
// up without a restart.
func SnapshotHandler(opts options, log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.requireToken && !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			apperr.Respond(c, apperr.Unauthorized("missing bearer token"))
			return
		}

		snap, err := catalog.LoadFile(opts.file)
		if err != nil {
			log.Error("Failed to load catalog file", logger.Err(err))
			apperr.Respond(c, apperr.Internal(err))
			return
		}

		if opts.maxDelay > 0 {
			delay := opts.minDelay
			if spread := opts.maxDelay - opts.minDelay; spread > 0 {
				delay += time.Duration(rand.Int63n(int64(spread) + 1))
			}
			time.Sleep(delay)
		}

		c.JSON(http.StatusOK, snap.Document())
	}
}
