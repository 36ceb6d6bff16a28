package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/attendance"
	"github.com/abovethehill/churchadmin/core/communication"
	"github.com/abovethehill/churchadmin/core/finance"
	"github.com/abovethehill/churchadmin/core/member"
)

const shutdownTimeout = 20 * time.Second

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger

		AttendanceSvc   *attendance.Service
		FinanceSvc      *finance.Service
		MemberSvc       *member.Service
		AnnouncementSvc *communication.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: conf.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := configureAuth(conf)
	admin := authorizeRoles(roleAdmin)

	registerAuthAPI(api, conf)
	registerMemberAPI(api, jwt, admin, s.opts.MemberSvc)
	registerAttendanceAPI(api, jwt, admin, s.opts.AttendanceSvc)
	registerFinanceAPI(api, jwt, admin, s.opts.FinanceSvc)
	registerAnnouncementAPI(api, jwt, admin, s.opts.AnnouncementSvc)
}

func (s *server) Start() {
	go func() {
		if err := s.app.Start(s.opts.Addr); err != nil && err != http.ErrServerClosed {
			s.opts.Logger.Error("server error", err)
			s.signalShutdown()
		}
	}()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-s.shutdown

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		s.opts.Logger.Error("graceful shutdown failed", err)
		_ = s.app.Close()
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown initiates a graceful shutdown; the error handler calls it
// when an unrecoverable condition is caught.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the ChurchAdmin API!")
}
