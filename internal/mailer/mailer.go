package mailer

import (
	"fmt"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers report and community-request emails to the marketplace
// admins. Implements domain.Mailer.
type SMTPMailer struct {
	host       string
	port       int
	from       string
	password   string
	adminEmail string
	logger     *logger.Logger
}

func NewSMTPMailer(host string, port int, from, password, adminEmail string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:       host,
		port:       port,
		from:       from,
		password:   password,
		adminEmail: adminEmail,
		logger:     log.Named("SMTPMailer"),
	}
}

// SendReport forwards an abuse report about an ad or a user.
func (s *SMTPMailer) SendReport(report domain.Report) error {
	subject := fmt.Sprintf("[PenSell] Denúncia: %s %s", report.Type, report.ItemID)
	body := fmt.Sprintf(
		"Nova denúncia recebida.\n\n"+
			"Tipo: %s\n"+
			"Item: %s (%s)\n"+
			"Denunciante: %s <%s>\n\n"+
			"Descrição:\n%s\n",
		report.Type, report.ItemTitle, report.ItemID,
		report.ReporterName, report.ReporterEmail,
		report.Description,
	)
	return s.send(subject, body)
}

// SendCommunityRequest forwards a request to open a new community.
func (s *SMTPMailer) SendCommunityRequest(request domain.CommunityRequest) error {
	subject := fmt.Sprintf("[PenSell] Pedido de nova comunidade: %s", request.Name)
	body := fmt.Sprintf(
		"Pedido de abertura de comunidade.\n\n"+
			"Nome: %s\n"+
			"Cidade: %s\n"+
			"Solicitante: %s <%s>\n\n"+
			"Detalhes:\n%s\n",
		request.Name, request.City,
		request.RequesterName, request.RequesterEmail,
		request.Details,
	)
	return s.send(subject, body)
}

func (s *SMTPMailer) send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.from, s.password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send admin email", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("smtp send failed: %w", err)
	}
	s.logger.Info("Admin email sent", zap.String("subject", subject))
	return nil
}
