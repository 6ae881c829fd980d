package email

import (
	"io/fs"
	"net/smtp"
	"slices"
)

// SetSendFunc replaces the SMTP transport for tests.
func (e *SMTPMailer) SetSendFunc(fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	e.sendMail = fn
}

// ParsePages exposes the template loader for tests.
func ParsePages(fsys fs.FS, layout string) ([]string, error) {
	pages, err := parsePages(fsys, layout)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
