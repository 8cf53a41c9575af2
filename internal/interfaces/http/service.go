package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	interfaces "github.com/blind-mentorship/mentorship-wallet/internal/interfaces"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

var (
	// ErrNullWalletService ...
	ErrNullWalletService = errors.New("wallet service must not be null")
	// ErrInvalidPort ...
	ErrInvalidPort = errors.New("port must be in range [1, 65535]")
)

// ServiceOpts defines the options to start the connector API.
type ServiceOpts struct {
	Port      int
	WalletSvc application.WalletService
}

func (o ServiceOpts) validate() error {
	if o.WalletSvc == nil {
		return ErrNullWalletService
	}
	if o.Port <= 0 || o.Port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

func (o ServiceOpts) address() string {
	return fmt.Sprintf(":%d", o.Port)
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

// NewService returns the http interface exposing the wallet service to
// connected dapps.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %w", err)
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              opts.address(),
			Handler:           NewRouter(opts.WalletSvc),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("connector interface stopped unexpectedly")
		}
	}()

	log.Infof("connector interface is listening on %s", s.server.Addr)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop connector interface")
	}
	log.Debug("disabled connector interface")
}
