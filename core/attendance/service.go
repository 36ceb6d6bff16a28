package attendance

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

var ErrNotFound = core.NotFoundError("Attendance record not found")

type (
	// Filter narrows attendance queries.
	Filter struct {
		Date time.Time // matches records within this local calendar day
	}

	Repository interface {
		QueryAttendance(ctx context.Context, filter Filter) ([]Attendance, error)
		GetAttendanceByID(ctx context.Context, id primitive.ObjectID) (Attendance, error)
		CreateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		UpdateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		DeleteAttendance(ctx context.Context, id primitive.ObjectID) error
		// AggregateAttendance sums the window's records into a single bucket.
		// `to` may be zero for an open-ended window. The zero Stats is
		// returned when no record matches.
		AggregateAttendance(ctx context.Context, from, to time.Time) (Stats, error)
	}

	Service struct {
		repo Repository
		mail core.EmailService
		conf *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mail: mailSvc, conf: conf}
}

func (svc *Service) Query(ctx context.Context, filter Filter) ([]Attendance, error) {
	return svc.repo.QueryAttendance(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Attendance, error) {
	return svc.repo.GetAttendanceByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAttendance) (Attendance, error) {
	if err := na.Validate(); err != nil {
		return Attendance{}, err
	}
	svcDate, _ := core.ParseDate(na.ServiceDate)
	createdBy, err := primitive.ObjectIDFromHex(svc.conf.Admin.ID)
	if err != nil {
		return Attendance{}, errors.Wrap(err, "parsing admin id")
	}

	att := Attendance{
		ServiceDate:     svcDate,
		ServiceType:     na.ServiceType,
		NoOfMen:         na.NoOfMen.Int(),
		NoOfWomen:       na.NoOfWomen.Int(),
		NoOfBoys:        na.NoOfBoys.Int(),
		NoOfGirls:       na.NoOfGirls.Int(),
		NoOfChildren:    na.NoOfChildren.Int(),
		NoOfFirstTimers: na.NoOfFirstTimers.Int(),
		Notes:           na.Notes,
		CreatedBy:       createdBy,
		PastorEmail:     svc.conf.Mail.PastorEmail,
		CreatedAt:       time.Now().UTC(),
	}
	att.ComputeTotal()
	return svc.repo.CreateAttendance(ctx, att)
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, ua UpdateAttendance) (Attendance, error) {
	if err := ua.Validate(); err != nil {
		return Attendance{}, err
	}
	att, err := svc.repo.GetAttendanceByID(ctx, id)
	if err != nil {
		return Attendance{}, err
	}

	if ua.ServiceDate != "" {
		att.ServiceDate, _ = core.ParseDate(ua.ServiceDate)
	}
	if ua.ServiceType != "" {
		att.ServiceType = ua.ServiceType
	}
	att.NoOfMen = ua.NoOfMen.Int()
	att.NoOfWomen = ua.NoOfWomen.Int()
	att.NoOfBoys = ua.NoOfBoys.Int()
	att.NoOfGirls = ua.NoOfGirls.Int()
	att.NoOfChildren = ua.NoOfChildren.Int()
	att.NoOfFirstTimers = ua.NoOfFirstTimers.Int()
	att.Notes = ua.Notes
	att.PastorEmail = svc.conf.Mail.PastorEmail
	att.ComputeTotal()
	return svc.repo.UpdateAttendance(ctx, att)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteAttendance(ctx, id)
}

// Summary aggregates the current month and the current local calendar day.
// It never writes and always returns fully-populated, zero-filled buckets.
func (svc *Service) Summary(ctx context.Context) (Summary, error) {
	now := time.Now()

	monthly, err := svc.repo.AggregateAttendance(ctx, core.StartOfMonth(now), time.Time{})
	if err != nil {
		return Summary{}, errors.Wrap(err, "aggregating monthly attendance")
	}
	dayStart := core.StartOfDay(now)
	today, err := svc.repo.AggregateAttendance(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return Summary{}, errors.Wrap(err, "aggregating today's attendance")
	}

	return Summary{
		Monthly: MonthlyStats{
			TotalAttendance:  monthly.TotalAttendance,
			TotalFirstTimers: monthly.TotalFirstTimers,
			AvgAttendance:    monthly.AvgAttendance,
			Services:         monthly.Services,
		},
		Today: DailyStats{
			TotalAttendance:  today.TotalAttendance,
			TotalFirstTimers: today.TotalFirstTimers,
		},
	}, nil
}

// SendReport renders the pastor report for the record and delivers it to the
// configured recipients. SentToPastor flips to true only after a successful
// delivery; a transport failure propagates and leaves the record unchanged.
// Duplicate sends are not rejected here; the flag is a soft guard for the UI.
func (svc *Service) SendReport(ctx context.Context, id primitive.ObjectID) (Attendance, error) {
	att, err := svc.repo.GetAttendanceByID(ctx, id)
	if err != nil {
		return Attendance{}, err
	}

	if att.PastorEmail == "" {
		att.PastorEmail = svc.conf.Mail.PastorEmail
		if att, err = svc.repo.UpdateAttendance(ctx, att); err != nil {
			return Attendance{}, err
		}
	}

	msg := svc.reportMessage(att)
	if err := svc.mail.SendMessage(ctx, &msg); err != nil {
		return Attendance{}, errors.Wrap(err, "sending attendance report")
	}

	att.SentToPastor = true
	return svc.repo.UpdateAttendance(ctx, att)
}

type attendanceReportData struct {
	ServiceType      string
	ServiceTypeLower string
	FormattedDate    string
	NoOfMen          int
	NoOfWomen        int
	NoOfBoys         int
	NoOfGirls        int
	NoOfChildren     int
	NoOfFirstTimers  int
	TotalAttendance  int
	Notes            string
}

func (svc *Service) reportMessage(att Attendance) core.EmailMessage {
	formattedDate := att.ServiceDate.Format("Monday, January 2, 2006")

	to := make([]mail.Address, 0, len(svc.conf.Mail.ReportRecipients))
	for _, addr := range svc.conf.Mail.ReportRecipients {
		to = append(to, mail.Address{Address: addr})
	}

	return core.EmailMessage{
		To:           to,
		Subject:      fmt.Sprintf("Attendance Report - %s (%s)", att.ServiceType, formattedDate),
		TemplateName: "attendance_report",
		TemplateData: attendanceReportData{
			ServiceType:      att.ServiceType,
			ServiceTypeLower: strings.ToLower(att.ServiceType),
			FormattedDate:    formattedDate,
			NoOfMen:          att.NoOfMen,
			NoOfWomen:        att.NoOfWomen,
			NoOfBoys:         att.NoOfBoys,
			NoOfGirls:        att.NoOfGirls,
			NoOfChildren:     att.NoOfChildren,
			NoOfFirstTimers:  att.NoOfFirstTimers,
			TotalAttendance:  att.TotalAttendance,
			Notes:            att.Notes,
		},
	}
}
