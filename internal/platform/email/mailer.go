package email

import (
	"errors"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoRecipients = errors.New("no recipients")
	ErrBadHeader    = errors.New("header value contains a line break")
)

type Mailer interface {
	SendPlain(to []string, subject, body string) error
	SendHTML(to []string, subject, tmplName string, data map[string]string) error
	// SendBCC sends one HTML message addressed to `to` with every address in bcc as a
	// blind carbon copy recipient. Only `to` appears in the message headers.
	SendBCC(to string, bcc []string, subject, htmlBody string) error
}

// message is a single-part MIME message. The envelope is kept apart from the
// headers so blind copies never show up in them.
type message struct {
	from        string
	headerTo    string
	subject     string
	contentType string
	body        string
	domain      string
	date        time.Time
}

func (m message) bytes() ([]byte, error) {
	for _, v := range []string{m.from, m.headerTo, m.subject} {
		if strings.ContainsAny(v, "\r\n") {
			return nil, ErrBadHeader
		}
	}

	var b strings.Builder
	header := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	header("From", m.from)
	header("To", m.headerTo)
	header("Subject", mime.QEncoding.Encode("utf-8", m.subject))
	header("Date", m.date.Format(time.RFC1123Z))
	header("Message-ID", "<"+uuid.NewString()+"@"+m.domain+">")
	header("MIME-Version", "1.0")
	header("Content-Type", m.contentType+`; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(m.body)

	return []byte(b.String()), nil
}
