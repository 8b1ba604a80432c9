package service

import (
	"strings"

	"github.com/danokoye/athenaeum/data"
	"github.com/danokoye/athenaeum/internal/mailer"
)

type notifications interface {
	NotifyOverdueLoans() error
	NotifyUpcomingDueLoans() error
}

// NotifyOverdueLoans service finds every overdue loan and emails the borrower
// a reminder. It reads loan state only; overdue loans stay active until they
// are actually returned.
func (s *service) NotifyOverdueLoans() error {
	overdue, err := s.repo.GetOverdueLoans(s.clock.Today())
	if err != nil {
		return err
	}
	for _, loan := range overdue {
		s.sendLoanNotice(loan, "loan_overdue.tmpl", map[string]interface{}{
			"overdueDays": loan.OverdueDays(s.clock),
		})
	}
	return nil
}

// NotifyUpcomingDueLoans service emails borrowers whose loans fall due within
// the configured due-soon window.
func (s *service) NotifyUpcomingDueLoans() error {
	from := s.clock.Today()
	to := from.AddDate(0, 0, s.policy.Config().DueSoonDays)
	upcoming, err := s.repo.GetUpcomingDueLoans(from, to)
	if err != nil {
		return err
	}
	for _, loan := range upcoming {
		s.sendLoanNotice(loan, "loan_due_soon.tmpl", map[string]interface{}{
			"daysUntilDue": loan.Period.DaysUntilDue(s.clock),
		})
	}
	return nil
}

// sendLoanNotice resolves the borrower and the book, then mails the given
// template in a background goroutine. A failed lookup is logged and skipped
// so one bad record cannot stall a sweep.
func (s *service) sendLoanNotice(loan *data.BookLoan, templateFile string, extra map[string]interface{}) {
	user, err := s.repo.GetUserByID(loan.UserID)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"loan": loan.Reference})
		return
	}
	book, err := s.repo.GetBook(loan.BookID)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"loan": loan.Reference})
		return
	}
	payload := map[string]interface{}{
		"userName":  strings.Split(user.Name, " ")[0],
		"bookTitle": book.Title,
		"reference": loan.Reference,
		"dueDate":   loan.Period.DueDate.Format("2 January 2006"),
	}
	for k, v := range extra {
		payload[k] = v
	}
	recipient := user.Email
	s.background(func() {
		m := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := m.Send(recipient, templateFile, payload)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"loan": loan.Reference})
		}
	})
}
