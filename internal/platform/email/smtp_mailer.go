package email

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
)

var _ Mailer = &SMTPMailer{}

type templateMap map[string]*template.Template

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	from      string
	pass      string
	host      string
	port      int
	sender    string
	templates templateMap
	sendMail  sendFunc
}

func (e *SMTPMailer) send(headerTo string, envelopeTo []string, subject, body, contentType string) error {
	if len(envelopeTo) == 0 {
		return ErrNoRecipients
	}

	msg, err := message{
		from:        e.sender,
		headerTo:    headerTo,
		subject:     subject,
		contentType: contentType,
		body:        body,
		domain:      e.host,
		date:        time.Now(),
	}.bytes()
	if err != nil {
		return fmt.Errorf("build message %q: %w", subject, err)
	}

	addr := net.JoinHostPort(e.host, strconv.Itoa(e.port))
	auth := smtp.PlainAuth("", e.from, e.pass, e.host)
	if err := e.sendMail(addr, auth, e.from, envelopeTo, msg); err != nil {
		return fmt.Errorf("smtp send to %d recipient(s): %w", len(envelopeTo), err)
	}

	slog.Info("Email sent.", "subject", subject, "recipients", len(envelopeTo))
	return nil
}

func (e *SMTPMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	tmpl, ok := e.templates[tmplName]
	if !ok {
		return fmt.Errorf("template does not exist: %s", tmplName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute email template for subject %q: %w", subject, err)
	}

	if err := e.send(strings.Join(to, ", "), to, subject, buf.String(), "text/html"); err != nil {
		return fmt.Errorf("sending email with subject %q: %w", subject, err)
	}

	return nil
}

func (e *SMTPMailer) SendPlain(to []string, subject, body string) error {
	return e.send(strings.Join(to, ", "), to, subject, body, "text/plain")
}

func (e *SMTPMailer) SendBCC(to string, bcc []string, subject, htmlBody string) error {
	envelope := make([]string, 0, len(bcc)+1)
	envelope = append(envelope, to)
	envelope = append(envelope, bcc...)

	if err := e.send(to, envelope, subject, htmlBody, "text/html"); err != nil {
		return fmt.Errorf("sending bcc email with subject %q: %w", subject, err)
	}
	return nil
}

func NewSMTPMailer(cfg *config.SMTP, opts *config.Email) (*SMTPMailer, error) {
	pages, err := parsePages(os.DirFS(opts.Templates), opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("email templates in %s: %w", opts.Templates, err)
	}

	return &SMTPMailer{
		from:      cfg.User,
		pass:      cfg.Password,
		host:      cfg.Host,
		port:      cfg.Port,
		sender:    opts.Sender,
		templates: pages,
		sendMail:  smtp.SendMail,
	}, nil
}

// parsePages pairs the layout with every other top-level *.html file in fsys. Each page
// is keyed by its file name without the extension.
func parsePages(fsys fs.FS, layout string) (templateMap, error) {
	base, err := template.New("layout").ParseFS(fsys, layout)
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", layout, err)
	}

	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}

	pages := make(templateMap, len(files))
	for _, file := range files {
		if file == layout {
			continue
		}

		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", file, err)
		}

		page, err := clone.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", file, err)
		}

		name := strings.TrimSuffix(file, ".html")
		pages[name] = page
		slog.Debug("Parsed email page.", "name", name)
	}

	return pages, nil
}
