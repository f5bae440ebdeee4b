// Package mail sends the transactional messages of the service over SMTP.
// Sending is best-effort: a failed welcome message never fails the signup.
package mail

import (
	"bytes"
	"text/template"

	"github.com/go-mail/mail/v2"
)

const sendRetries = 3

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	`Hi {{.Name}},

Your Taskboard account is ready. Sign in with {{.Email}} to start
organizing your tasks.

— Taskboard`))

type Mailer struct {
	dialer *mail.Dialer
	sender string
}

func NewMailer(host string, port int, username, password, sender string) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// SendWelcome delivers the post-signup message to the given address.
func (m *Mailer) SendWelcome(to, name string) error {
	var body bytes.Buffer
	if err := welcomeTmpl.Execute(&body, struct{ Name, Email string }{Name: name, Email: to}); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", "Welcome to Taskboard")
	msg.SetBody("text/plain", body.String())

	var err error
	for i := 0; i < sendRetries; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}
