package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leasebackend/internal/accounting"
	"leasebackend/internal/notify"
	"leasebackend/internal/repository"
	"leasebackend/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// reminderWindowDays is how many days before quarter end the reminder fires.
const reminderWindowDays = 5

// StampDutyReminder checks, once a day, whether the stamp duty declaration
// window for the current quarter is approaching and reminds the operator of
// every contract signed this quarter together with its duty amount.
type StampDutyReminder struct {
	contractRepo repository.ContractRepository
	accounting   service.AccountingService
	sender       *notify.Sender
	log          *logrus.Logger
	now          func() time.Time
}

func NewStampDutyReminder(
	contractRepo repository.ContractRepository,
	accountingService service.AccountingService,
	sender *notify.Sender,
	log *logrus.Logger,
) *StampDutyReminder {
	return &StampDutyReminder{
		contractRepo: contractRepo,
		accounting:   accountingService,
		sender:       sender,
		log:          log,
		now:          time.Now,
	}
}

// Start registers the daily check on the given cron runner.
func (r *StampDutyReminder) Start(c *cron.Cron) error {
	_, err := c.AddFunc("0 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := r.Run(ctx); err != nil {
			r.log.Errorf("stamp duty reminder run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule stamp duty reminder: %w", err)
	}
	return nil
}

// Run performs one reminder check. Outside the quarter-end window it does
// nothing.
func (r *StampDutyReminder) Run(ctx context.Context) error {
	today := r.now()
	if !InReminderWindow(today) {
		return nil
	}

	from, to := QuarterBounds(today)
	contracts, err := r.contractRepo.ListCreatedBetween(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to list contracts for stamp duty reminder: %w", err)
	}
	if len(contracts) == 0 {
		r.log.Info("stamp duty reminder: no contracts signed this quarter")
		return nil
	}

	var lines []string
	for _, contract := range contracts {
		duty := contract.InitialStampDuty
		if duty.IsZero() {
			computed, err := r.accounting.StampDuty(ctx, contract.ID.String())
			if err != nil {
				r.log.Warnf("stamp duty reminder: compute failed for contract %s: %v", contract.ContractNo, err)
				duty = accounting.StampDuty(contract.TotalRent)
			} else {
				duty = computed
			}
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  stamp duty %s",
			contract.ContractNo, contract.CustomerName, duty.StringFixed(2)))
	}

	subject := fmt.Sprintf("Stamp duty declaration due: %d contract(s) signed this quarter", len(contracts))
	body := fmt.Sprintf(
		"The stamp duty declaration window for the quarter ending %s closes soon.\n\n"+
			"Contracts signed this quarter:\n%s\n",
		to.Format("2006-01-02"), strings.Join(lines, "\n"))

	r.log.WithFields(logrus.Fields{
		"contracts":   len(contracts),
		"quarter_end": to.Format("2006-01-02"),
	}).Info("stamp duty declaration reminder")

	if err := r.sender.Send(subject, body); err != nil {
		return err
	}
	return nil
}

// InReminderWindow reports whether the date falls inside the last
// reminderWindowDays days of a quarter-end month (March, June, September,
// December).
func InReminderWindow(t time.Time) bool {
	month := t.Month()
	if month != time.March && month != time.June && month != time.September && month != time.December {
		return false
	}
	lastDay := accounting.DaysInMonth(t.Year(), int(month))
	return t.Day() > lastDay-reminderWindowDays
}

// QuarterBounds returns the first and last calendar day of the quarter
// containing t.
func QuarterBounds(t time.Time) (time.Time, time.Time) {
	quarter := (int(t.Month()) - 1) / 3
	startMonth := time.Month(quarter*3 + 1)
	start := time.Date(t.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0).AddDate(0, 0, -1)
	return start, end
}
