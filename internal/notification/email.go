package notification

import (
	"context"
	"fmt"
	"log"

	"BillTracker/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory resolves recipients to user profiles. Satisfied by
// auth.UserRepository.
type UserDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
}

// Mailer sends one email. Satisfied by config.EmailService.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// EmailEcho mails a copy of each committed notification to recipients who
// opted in. Failures are logged and never fail the batch.
type EmailEcho struct {
	users  UserDirectory
	mailer Mailer
}

// NewEmailEcho creates a new EmailEcho.
func NewEmailEcho(users UserDirectory, mailer Mailer) *EmailEcho {
	return &EmailEcho{users: users, mailer: mailer}
}

// Send delivers email copies for an already-committed batch.
func (e *EmailEcho) Send(ctx context.Context, notifications []*Notification) {
	for _, n := range notifications {
		userID, err := primitive.ObjectIDFromHex(n.UserID)
		if err != nil {
			log.Printf("Email echo: invalid user id %q: %v", n.UserID, err)
			continue
		}
		user, err := e.users.FindByID(ctx, userID)
		if err != nil {
			log.Printf("Email echo: failed to look up user %s: %v", n.UserID, err)
			continue
		}
		if user == nil || !user.EmailNotifications {
			continue
		}

		subject := fmt.Sprintf("Update on %s", n.Header)
		body := fmt.Sprintf("<p><strong>%s</strong> — %s</p><p>%s</p>", n.Header, n.Subheader, n.BodyText)
		if err := e.mailer.SendEmail(user.Email, subject, body); err != nil {
			log.Printf("Email echo: failed to send to %s: %v", user.Email, err)
		}
	}
}
