// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/consts"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/metrics"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/vmoperation"
)

const shutdownTimeout = 10 * time.Second

type VMOperationHandler interface {
	Handle(ctx context.Context, vmName, operationName, subscriptionID string) (vmoperation.Result, error)
}

type Options struct {
	// Port the server listens on
	Port int
	// SubscriptionID is called on every request so configuration changes apply without a restart
	SubscriptionID func() string
	// Gatherer backs the metrics endpoint, prometheus.DefaultGatherer when nil
	Gatherer prometheus.Gatherer
}

type Server struct {
	handler        VMOperationHandler
	subscriptionID func() string
	logger         logr.Logger
	httpServer     *http.Server
}

func New(handler VMOperationHandler, opts Options, logger logr.Logger) *Server {
	s := &Server{
		handler:        handler,
		subscriptionID: opts.SubscriptionID,
		logger:         logger,
	}
	if s.subscriptionID == nil {
		s.subscriptionID = func() string { return "" }
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.HandleFunc(consts.FunctionRoute, s.serveVMOperation)
	mux.HandleFunc(consts.HealthzEndpoint, serveHealthz)
	mux.Handle(consts.MetricsEndpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(opts.Port)),
		Handler:           mux,
		MaxHeaderBytes:    1 << 20,
		IdleTimeout:       90 * time.Second, // matches http.DefaultTransport keep-alive timeout
		ReadHeaderTimeout: 32 * time.Second,
	}
	return s
}

// Handler returns the request multiplexer of the server.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting virtual machine operation server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(err, "failed to start virtual machine operation server")
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Stopping virtual machine operation server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(err, "failed to shut down virtual machine operation server")
			return err
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) serveVMOperation(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		resp.Header().Set("Allow", "GET, POST")
		writeText(resp, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}

	logger := s.logger.WithValues("requestID", uuid.NewString())
	ctx := log.IntoContext(req.Context(), logger)

	query := req.URL.Query()
	vmName := query.Get(consts.VMNameQueryParam)
	subscriptionID := strings.TrimSpace(s.subscriptionID())
	mc := metrics.NewMetricsContext(subscriptionID)

	result, err := s.handler.Handle(ctx, vmName, query.Get(consts.OperationQueryParam), subscriptionID)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			logger.Error(err, "virtual machine operation failed", "errorCode", respErr.ErrorCode, "statusCode", respErr.StatusCode)
		} else {
			logger.Error(err, "virtual machine operation failed")
		}
		result.StatusCode = http.StatusInternalServerError
		result.Message = http.StatusText(http.StatusInternalServerError)
	}
	mc.ObserveVMOperationMetrics(string(result.Operation), result.StatusCode)

	if result.StatusCode == http.StatusNoContent {
		resp.WriteHeader(http.StatusNoContent)
		return
	}
	writeText(resp, result.StatusCode, result.Message)
}

func serveHealthz(resp http.ResponseWriter, _ *http.Request) {
	writeText(resp, http.StatusOK, "ok")
}

func writeText(resp http.ResponseWriter, statusCode int, body string) {
	resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
	resp.Header().Set("X-Content-Type-Options", "nosniff")
	resp.WriteHeader(statusCode)
	_, _ = io.WriteString(resp, body)
}
