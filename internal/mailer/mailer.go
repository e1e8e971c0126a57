package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer struct {
	dialer *mail.Dialer
	sender string
}

func New(host string, port int, username, password, sender string) Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return Mailer{
		dialer: dialer,
		sender: sender,
	}
}

// Send renders templateFile with data and delivers it to recipient, trying up to three times.
func (m Mailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.compose(recipient, templateFile, data)
	if err != nil {
		return err
	}

	for i := 1; i <= 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}

	return err
}

func (m Mailer) compose(recipient, templateFile string, data any) (*mail.Message, error) {
	subject, plainBody, htmlBody, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	return msg, nil
}

func render(templateFile string, data any) (subject, plainBody, htmlBody string, err error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", err
	}

	parts := map[string]*bytes.Buffer{
		"subject":   new(bytes.Buffer),
		"plainBody": new(bytes.Buffer),
		"htmlBody":  new(bytes.Buffer),
	}
	for name, buf := range parts {
		err = tmpl.ExecuteTemplate(buf, name, data)
		if err != nil {
			return "", "", "", err
		}
	}

	return parts["subject"].String(), parts["plainBody"].String(), parts["htmlBody"].String(), nil
}
