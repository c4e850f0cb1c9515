package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubcorinto/resort/internal/catalog"
	"github.com/clubcorinto/resort/internal/logger"
	"github.com/clubcorinto/resort/internal/promo"
	"github.com/clubcorinto/resort/internal/reservation"
)

type Server struct {
	srv      *http.Server
	router   chi.Router
	l        *logger.Logger
	conf     Conf
	rManager *reservation.Manager
	catalog  *catalog.Catalog
	promo    *promo.Manager
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
}

func New(
	ctx context.Context,
	conf Conf,
	reservationManager *reservation.Manager,
	cat *catalog.Catalog,
	promoManager *promo.Manager,
) (*Server, error) {
	router := chi.NewRouter()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           router,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   router,
		l:        conf.L,
		conf:     conf,
		rManager: reservationManager,
		catalog:  cat,
		promo:    promoManager,
	}

	server.addRoutes(router)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
