package services

import (
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification kinds recorded in the notification log.
const (
	MailReservationConfirmation = "reservation_confirmation"
	MailReservationNotification = "reservation_notification"
	MailReservationStatusUpdate = "reservation_status_update"
	MailContactConfirmation     = "contact_confirmation"
	MailContactNotification     = "contact_notification"
	MailTest                    = "test"
)

// EmailService sends transactional email over SMTP. Without complete SMTP
// configuration it degrades to mock mode: every message is logged and
// recorded, nothing leaves the process. Callers treat all sends as
// best-effort; an error here must never fail the request that triggered it.
type EmailService struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger
}

func NewEmailService(cfg config.Config, db *gorm.DB, log *zap.Logger) *EmailService {
	return &EmailService{cfg: cfg, db: db, log: log}
}

func (s *EmailService) configured() bool {
	return s.cfg.SMTPHost != "" && s.cfg.SMTPPort != "" && s.cfg.SMTPUser != "" && s.cfg.SMTPPass != ""
}

// record writes the notification log row. Log-write failures are only
// logged; the dispatch outcome already happened.
func (s *EmailService) record(kind, recipient, subject, status, sendErr string, meta map[string]interface{}) {
	entry := models.NotificationLog{
		Kind:      kind,
		Recipient: recipient,
		Subject:   subject,
		Status:    status,
		Error:     sendErr,
	}
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			entry.Meta = datatypes.JSON(raw)
		}
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warn("failed to record notification log", zap.String("kind", kind), zap.Error(err))
	}
}

// send assembles a multipart/alternative message (plain + HTML) and ships it.
func (s *EmailService) send(kind, to, subject, plainBody, htmlBody string, meta map[string]interface{}) error {
	if !s.configured() {
		s.log.Info("[MOCK EMAIL]",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		s.record(kind, to, subject, models.NotificationMocked, "", meta)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPUser)
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	boundary := "----=_GUESTHOUSE_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, s.cfg.SMTPUser, []string{to}, []byte(sb.String())); err != nil {
		s.log.Warn("failed to send email",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.Error(err),
		)
		s.record(kind, to, subject, models.NotificationFailed, err.Error(), meta)
		return err
	}

	s.record(kind, to, subject, models.NotificationSent, "", meta)
	return nil
}

// emailTemplate wraps content in the branded HTML shell shared by every
// message.
func (s *EmailService) emailTemplate(title, content string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="ro">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { background:#f4f4f4; font-family:'Segoe UI', Tahoma, sans-serif; color:#333; margin:0; }
.container { max-width:600px; margin:20px auto; background:#fff; border-radius:10px; overflow:hidden; }
.header { background:linear-gradient(135deg, #8B5A3C, #D4A574); color:#fff; padding:30px 20px; text-align:center; }
.content { padding:30px 20px; }
.footer { background:#f8f9fa; padding:20px; text-align:center; color:#666; font-size:14px; }
.info-box { background:#f8f9fa; border-left:4px solid #D4A574; padding:15px; margin:20px 0; }
.highlight { color:#8B5A3C; font-weight:600; }
table { width:100%%; border-collapse:collapse; }
th, td { padding:8px; text-align:left; border-bottom:1px solid #ddd; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>%s</h1><p>Pensiune în inima naturii</p></div>
  <div class="content">%s</div>
  <div class="footer"><p><strong>%s</strong></p><p>✉️ %s</p></div>
</div>
</body>
</html>`, title, s.cfg.BusinessName, content, s.cfg.BusinessName, s.cfg.OwnerEmail)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// SendReservationConfirmation emails the guest that the request was received.
func (s *EmailService) SendReservationConfirmation(r *models.Reservation) error {
	subject := fmt.Sprintf("Confirmare Rezervare #%s - %s", r.ConfirmationCode, s.cfg.BusinessName)

	plain := fmt.Sprintf(
		"Bună ziua %s,\n\n"+
			"Rezervarea dvs. a fost înregistrată și este în curs de procesare.\n\n"+
			"Cod confirmare: %s\nCheck-in: %s (de la %s)\nCheck-out: %s (până la %s)\n"+
			"Nopți: %d\nOaspeți: %d\nPreț total estimativ: %.2f %s\nStatus: în așteptare\n",
		r.Name, r.ConfirmationCode,
		formatDate(r.CheckinDate), s.cfg.CheckInTime,
		formatDate(r.CheckoutDate), s.cfg.CheckOutTime,
		Nights(r.CheckinDate, r.CheckoutDate), r.Guests, r.TotalPrice, s.cfg.Currency,
	)

	content := fmt.Sprintf(`<h2>Confirmare Rezervare</h2>
<p>Bună ziua <span class="highlight">%s</span>,</p>
<p>Vă mulțumim pentru rezervare! Cererea dvs. a fost înregistrată și este în curs de procesare.</p>
<div class="info-box"><table>
<tr><th>Cod confirmare</th><td class="highlight">%s</td></tr>
<tr><th>Check-in</th><td>%s</td></tr>
<tr><th>Check-out</th><td>%s</td></tr>
<tr><th>Nopți</th><td>%d</td></tr>
<tr><th>Oaspeți</th><td>%d</td></tr>
<tr><th>Preț total estimativ</th><td class="highlight">%.2f %s</td></tr>
</table></div>`,
		r.Name, r.ConfirmationCode,
		formatDate(r.CheckinDate), formatDate(r.CheckoutDate),
		Nights(r.CheckinDate, r.CheckoutDate), r.Guests, r.TotalPrice, s.cfg.Currency,
	)
	if r.Message != "" {
		content += fmt.Sprintf(`<div class="info-box"><p><em>%s</em></p></div>`, r.Message)
	}

	return s.send(MailReservationConfirmation, r.Email, subject, plain,
		s.emailTemplate(subject, content),
		map[string]interface{}{"reservationId": r.ID, "confirmationCode": r.ConfirmationCode})
}

// SendReservationNotification alerts the owner about a new reservation.
func (s *EmailService) SendReservationNotification(r *models.Reservation) error {
	subject := fmt.Sprintf("🆕 Rezervare Nouă #%s", r.ConfirmationCode)

	plain := fmt.Sprintf(
		"Rezervare nouă de la %s (%s).\n\nPerioada: %s - %s\nOaspeți: %d\nPreț total: %.2f %s\nTelefon: %s\nMesaj: %s\n",
		r.Name, r.Email, formatDate(r.CheckinDate), formatDate(r.CheckoutDate),
		r.Guests, r.TotalPrice, s.cfg.Currency, r.Phone, r.Message,
	)

	content := fmt.Sprintf(`<h2>Rezervare Nouă</h2>
<div class="info-box"><table>
<tr><th>Nume</th><td>%s</td></tr>
<tr><th>Email</th><td>%s</td></tr>
<tr><th>Telefon</th><td>%s</td></tr>
<tr><th>Perioada</th><td>%s - %s</td></tr>
<tr><th>Oaspeți</th><td>%d</td></tr>
<tr><th>Preț total</th><td class="highlight">%.2f %s</td></tr>
<tr><th>Cod</th><td>%s</td></tr>
</table></div>`,
		r.Name, r.Email, r.Phone,
		formatDate(r.CheckinDate), formatDate(r.CheckoutDate),
		r.Guests, r.TotalPrice, s.cfg.Currency, r.ConfirmationCode,
	)

	return s.send(MailReservationNotification, s.cfg.OwnerEmail, subject, plain,
		s.emailTemplate(subject, content),
		map[string]interface{}{"reservationId": r.ID, "confirmationCode": r.ConfirmationCode})
}

var statusUpdateCopy = map[ReservationStatus]struct {
	Title string
	Body  string
}{
	ReservationConfirmed: {
		Title: "✅ Rezervare Confirmată",
		Body:  "Rezervarea dvs. a fost confirmată! Vă așteptăm cu drag.",
	},
	ReservationCancelled: {
		Title: "❌ Rezervare Anulată",
		Body:  "Rezervarea dvs. a fost anulată. Pentru detalii ne puteți contacta oricând.",
	},
	ReservationCompleted: {
		Title: "🏡 Vă mulțumim pentru vizită",
		Body:  "Sperăm că v-ați simțit bine la noi! Ne-am bucura să ne lăsați un review.",
	},
}

// SendStatusUpdate emails the guest about a lifecycle change. Transitions
// without guest-facing copy (back to pending) are skipped.
func (s *EmailService) SendStatusUpdate(r *models.Reservation, newStatus ReservationStatus) error {
	copyFor, ok := statusUpdateCopy[newStatus]
	if !ok {
		return nil
	}

	subject := fmt.Sprintf("%s - Rezervarea #%s", copyFor.Title, r.ConfirmationCode)

	plain := fmt.Sprintf("Bună ziua %s,\n\n%s\n\nPerioada: %s - %s\nCod confirmare: %s\n",
		r.Name, copyFor.Body, formatDate(r.CheckinDate), formatDate(r.CheckoutDate), r.ConfirmationCode)

	content := fmt.Sprintf(`<h2>%s</h2>
<p>Bună ziua <span class="highlight">%s</span>,</p>
<p>%s</p>
<div class="info-box"><table>
<tr><th>Perioada</th><td>%s - %s</td></tr>
<tr><th>Cod confirmare</th><td class="highlight">%s</td></tr>
</table></div>`,
		copyFor.Title, r.Name, copyFor.Body,
		formatDate(r.CheckinDate), formatDate(r.CheckoutDate), r.ConfirmationCode,
	)

	return s.send(MailReservationStatusUpdate, r.Email, subject, plain,
		s.emailTemplate(subject, content),
		map[string]interface{}{"reservationId": r.ID, "newStatus": newStatus.String()})
}

// SendContactConfirmation acknowledges a contact message to its sender.
func (s *EmailService) SendContactConfirmation(ct *models.Contact) error {
	subject := fmt.Sprintf("Confirmare - Mesajul dvs. a fost primit - %s", s.cfg.BusinessName)

	plain := fmt.Sprintf("Bună ziua %s,\n\nAm primit mesajul dvs. cu subiectul \"%s\" și vă vom răspunde în cel mai scurt timp.\n",
		ct.Name, ct.Subject)

	content := fmt.Sprintf(`<h2>Am primit mesajul dvs.</h2>
<p>Bună ziua <span class="highlight">%s</span>,</p>
<p>Vă mulțumim că ne-ați contactat. Vă vom răspunde în cel mai scurt timp posibil.</p>
<div class="info-box"><p><strong>Subiect:</strong> %s</p><p><em>%s</em></p></div>`,
		ct.Name, ct.Subject, ct.Message)

	return s.send(MailContactConfirmation, ct.Email, subject, plain,
		s.emailTemplate(subject, content),
		map[string]interface{}{"contactId": ct.ID})
}

var priorityMarker = map[string]string{
	"low":    "🟢",
	"medium": "🟡",
	"high":   "🟠",
	"urgent": "🔴",
}

// SendContactNotification forwards a contact message to the owner.
func (s *EmailService) SendContactNotification(ct *models.Contact) error {
	subject := fmt.Sprintf("📩 %s Contact Nou: %s", priorityMarker[ct.Priority], ct.Subject)

	plain := fmt.Sprintf("Mesaj nou de la %s (%s)\nTelefon: %s\nPrioritate: %s\n\n%s\n",
		ct.Name, ct.Email, ct.Phone, ct.Priority, ct.Message)

	content := fmt.Sprintf(`<h2>Mesaj Nou de Contact</h2>
<div class="info-box"><table>
<tr><th>Nume</th><td>%s</td></tr>
<tr><th>Email</th><td>%s</td></tr>
<tr><th>Telefon</th><td>%s</td></tr>
<tr><th>Prioritate</th><td>%s</td></tr>
<tr><th>Subiect</th><td>%s</td></tr>
</table></div>
<div class="info-box"><p><em>%s</em></p></div>`,
		ct.Name, ct.Email, ct.Phone, ct.Priority, ct.Subject, ct.Message)

	return s.send(MailContactNotification, s.cfg.OwnerEmail, subject, plain,
		s.emailTemplate(subject, content),
		map[string]interface{}{"contactId": ct.ID, "priority": ct.Priority})
}

// SendTestEmail verifies the SMTP configuration end to end.
func (s *EmailService) SendTestEmail(to string) error {
	subject := fmt.Sprintf("🧪 Test Email - %s", s.cfg.BusinessName)
	plain := "Acesta este un email de test. Configurația SMTP funcționează."
	content := `<h2>Test Email</h2><p>Acesta este un email de test. Configurația SMTP funcționează.</p>`
	return s.send(MailTest, to, subject, plain, s.emailTemplate(subject, content), nil)
}
