package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

const outreachSubject = "Horários disponíveis essa semana"

var outreachTemplate = template.Must(template.New("outreach").Parse(
	`<p>{{range .Lines}}{{.}}<br>{{end}}</p>`,
))

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// SendOutreach envia a mensagem sugerida com a versão texto e a HTML.
func (s *EmailSender) SendOutreach(to, name, body string) error {
	if s.Host == "" {
		return fmt.Errorf("smtp não configurado")
	}

	m, err := s.buildOutreach(to, name, body)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func (s *EmailSender) buildOutreach(to, name, body string) (*gomail.Message, error) {
	data := OutreachEmailData{
		Lines: strings.Split(body, "\n"),
	}

	var html bytes.Buffer
	if err := outreachTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetAddressHeader("To", to, name)
	m.SetHeader("Subject", outreachSubject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", html.String())
	return m, nil
}
