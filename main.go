package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/spf13/cobra"

	"github.com/uc-cdis/status-service/handlers"
)

type options struct {
	port         int
	metadataPath string
	lambda       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "status-service",
		Short: "Serve a greeting and build status over HTTP",
		Long: `status-service answers GET / with a greeting and GET /status with the
application description, version and commit read at startup.

BUILD_NUMBER and COMMIT_SHA override the default build identity.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 8080, "Port to listen on")
	cmd.Flags().StringVar(&opts.metadataPath, "metadata", handlers.DefaultMetadataPath, "Path to the metadata document")
	cmd.Flags().BoolVar(&opts.lambda, "lambda", false, "Serve through the AWS Lambda HTTP adapter instead of listening on a port")
	return cmd
}

// buildService performs the startup phase: metadata and build identity are
// resolved once and captured by the returned service.
func buildService(opts *options, lookup handlers.LookupFunc) (*handlers.Service, error) {
	meta, err := handlers.LoadMetadata(opts.metadataPath)
	if err != nil {
		return nil, err
	}
	build := handlers.ResolveBuildIdentity(lookup)
	log.WithFields(log.Fields{
		"version": meta.Version,
		"build":   build.BuildNumber,
		"sha":     build.CommitSHA,
	}).Info("Metadata loaded")
	return handlers.NewService(meta, build), nil
}

func run(ctx context.Context, opts *options) error {
	svc, err := buildService(opts, os.LookupEnv)
	if err != nil {
		return err
	}

	if opts.lambda {
		log.Info("Starting Lambda handler")
		lambda.Start(lambdaHandler(svc.Handler()).ProxyWithContext)
		return nil
	}
	return listen(ctx, opts.port, svc.Handler())
}

// lambdaHandler adapts handler to API Gateway HTTP API (payload v2) events.
func lambdaHandler(handler http.Handler) *httpadapter.HandlerAdapterV2 {
	return httpadapter.NewV2(handler)
}

func listen(ctx context.Context, port int, handler http.Handler) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	log.Infof("it's alive on http://localhost:%d", port)
	return serve(ctx, ln, handler)
}

// serve runs handler on ln until ctx is cancelled or a termination signal
// arrives, then waits for in-flight requests to finish before returning.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		log.WithError(err).Error("shutdown failed")
		return err
	}
	return nil
}

func main() {
	defaultLogging()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Fatal("Server failed")
	}
}
