package email

import "errors"

type StubMailer struct {
	SendPlainFunc func(to []string, subject, body string) error
	SendHTMLFunc  func(to []string, subject, tmplName string, data map[string]string) error
	SendBCCFunc   func(to string, bcc []string, subject, htmlBody string) error
}

var _ Mailer = (*StubMailer)(nil)

func (m *StubMailer) SendPlain(to []string, subject, body string) error {
	if m.SendPlainFunc == nil {
		return errors.New("SendPlain not implemented by stub")
	}
	return m.SendPlainFunc(to, subject, body)
}

func (m *StubMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	if m.SendHTMLFunc == nil {
		return errors.New("SendHTML not implemented by stub")
	}
	return m.SendHTMLFunc(to, subject, tmplName, data)
}

func (m *StubMailer) SendBCC(to string, bcc []string, subject, htmlBody string) error {
	if m.SendBCCFunc == nil {
		return errors.New("SendBCC not implemented by stub")
	}
	return m.SendBCCFunc(to, bcc, subject, htmlBody)
}
