package finance

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/currency"
	"github.com/go-playground/locales/en_NG"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

var ErrNotFound = core.NotFoundError("Finance record not found")

// reports display Naira amounts the way the dashboard does
var reportLocale locales.Translator = en_NG.New()

type (
	// Filter narrows transaction queries.
	Filter struct {
		Date time.Time // matches records within this local calendar day
	}

	Repository interface {
		QueryTransactions(ctx context.Context, filter Filter) ([]Transaction, error)
		GetTransactionByID(ctx context.Context, id primitive.ObjectID) (Transaction, error)
		CreateTransaction(ctx context.Context, tx Transaction) (Transaction, error)
		UpdateTransaction(ctx context.Context, tx Transaction) (Transaction, error)
		DeleteTransaction(ctx context.Context, id primitive.ObjectID) error
		// AggregateTransactions sums the window's records into a single
		// bucket. `to` may be zero for an open-ended window. The zero Stats
		// is returned when no record matches.
		AggregateTransactions(ctx context.Context, from, to time.Time) (Stats, error)
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

func (svc *Service) Query(ctx context.Context, filter Filter) ([]Transaction, error) {
	return svc.repo.QueryTransactions(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Transaction, error) {
	return svc.repo.GetTransactionByID(ctx, id)
}

// Create validates and persists a transaction, then dispatches the finance
// report for it. The record stays persisted even if the report delivery
// fails; the failure propagates so the caller sees it.
func (svc *Service) Create(ctx context.Context, nt NewTransaction) (Transaction, error) {
	if err := nt.Validate(); err != nil {
		return Transaction{}, err
	}

	now := time.Now().UTC()
	date := now
	if nt.Date != "" {
		date, _ = core.ParseDate(nt.Date)
	}
	method := nt.PaymentMethod
	if method == "" {
		method = MethodCash
	}

	tx := Transaction{
		OfferingAmount:    nt.OfferingAmount,
		TitheAmount:       nt.TitheAmount,
		SeedAmount:        nt.SeedAmount,
		SeedOfFaithAmount: nt.SeedOfFaithAmount,
		Date:              date,
		PaymentMethod:     method,
		Status:            StatusCompleted,
		RecordedBy:        defaultRecordedBy,
		PastorEmail:       svc.conf.Mail.PastorEmail,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	tx, err := svc.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return Transaction{}, err
	}

	msg := svc.reportMessage(tx)
	if err := svc.mail.SendMessage(ctx, &msg); err != nil {
		return Transaction{}, errors.Wrap(err, "sending finance report")
	}
	return tx, nil
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, ut UpdateTransaction) (Transaction, error) {
	if err := ut.Validate(); err != nil {
		return Transaction{}, err
	}
	tx, err := svc.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return Transaction{}, err
	}

	tx.OfferingAmount = ut.OfferingAmount
	tx.TitheAmount = ut.TitheAmount
	tx.SeedAmount = ut.SeedAmount
	tx.SeedOfFaithAmount = ut.SeedOfFaithAmount
	if ut.Date != "" {
		tx.Date, _ = core.ParseDate(ut.Date)
	}
	if ut.PaymentMethod != "" {
		tx.PaymentMethod = ut.PaymentMethod
	}
	if ut.Status != "" {
		tx.Status = ut.Status
	}
	tx.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTransaction(ctx, tx)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteTransaction(ctx, id)
}

// Summary aggregates the current month and the current local calendar day.
// It never writes and always returns fully-populated, zero-filled buckets.
func (svc *Service) Summary(ctx context.Context) (Summary, error) {
	now := time.Now()

	monthly, err := svc.repo.AggregateTransactions(ctx, core.StartOfMonth(now), time.Time{})
	if err != nil {
		return Summary{}, errors.Wrap(err, "aggregating monthly transactions")
	}
	dayStart := core.StartOfDay(now)
	today, err := svc.repo.AggregateTransactions(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return Summary{}, errors.Wrap(err, "aggregating today's transactions")
	}

	return Summary{Monthly: monthly, Today: today}, nil
}

// SendReport renders the finance report and delivers it to the configured
// recipients. SentToPastor flips only after a successful delivery.
func (svc *Service) SendReport(ctx context.Context, id primitive.ObjectID) (Transaction, error) {
	tx, err := svc.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return Transaction{}, err
	}

	msg := svc.reportMessage(tx)
	if err := svc.mail.SendMessage(ctx, &msg); err != nil {
		return Transaction{}, errors.Wrap(err, "sending finance report")
	}

	tx.SentToPastor = true
	tx.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTransaction(ctx, tx)
}

type financeReportData struct {
	FormattedDate string
	PaymentMethod string
	Offering      string
	Tithe         string
	Seed          string
	SeedOfFaith   string
	TotalAmount   string
}

func (svc *Service) reportMessage(tx Transaction) core.EmailMessage {
	formattedDate := tx.Date.Format("Monday, January 2, 2006")

	to := make([]mail.Address, 0, len(svc.conf.Mail.ReportRecipients))
	for _, addr := range svc.conf.Mail.ReportRecipients {
		to = append(to, mail.Address{Address: addr})
	}

	return core.EmailMessage{
		To:           to,
		Subject:      fmt.Sprintf("Financial Report - %s", formattedDate),
		TemplateName: "finance_report",
		TemplateData: financeReportData{
			FormattedDate: formattedDate,
			PaymentMethod: tx.PaymentMethod,
			Offering:      formatCurrency(tx.OfferingAmount),
			Tithe:         formatCurrency(tx.TitheAmount),
			Seed:          formatCurrency(tx.SeedAmount),
			SeedOfFaith:   formatCurrency(tx.SeedOfFaithAmount),
			TotalAmount:   formatCurrency(tx.Total()),
		},
	}
}

func formatCurrency(amount float64) string {
	return reportLocale.FmtCurrency(amount, 2, currency.NGN)
}
