package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/abovethehill/churchadmin/apps/api/echo"
	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/attendance"
	"github.com/abovethehill/churchadmin/core/communication"
	"github.com/abovethehill/churchadmin/core/finance"
	"github.com/abovethehill/churchadmin/core/member"
	emailsvc "github.com/abovethehill/churchadmin/services/email"
	logsvc "github.com/abovethehill/churchadmin/services/logger"
	"github.com/abovethehill/churchadmin/storage/mongodb"
)

func main() {
	conf := core.Conf
	std := log.New(os.Stdout, fmt.Sprintf("%s: ", conf.AppName), log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	db, err := mongodb.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf)
	}

	app := echoapi.NewServer(&echoapi.Options{
		Addr:            conf.Server.Addr,
		Conf:            conf,
		Logger:          logger,
		AttendanceSvc:   attendance.NewService(mongodb.NewAttendanceRepository(db), mailSvc, conf),
		FinanceSvc:      finance.NewService(mongodb.NewFinanceRepository(db), mailSvc, conf),
		MemberSvc:       member.NewService(mongodb.NewMemberRepository(db)),
		AnnouncementSvc: communication.NewService(mongodb.NewCommunicationRepository(db), conf),
	})

	logger.Info(fmt.Sprintf("%s listening on %s", conf.AppName, conf.Server.Addr))
	app.Start()
}
