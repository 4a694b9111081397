package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"oakridge/config"
)

// SendEmail sends an HTML email through SMTP. Returns an error for callers
// that care; most notification paths log and move on.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" || password == "" {
		log.Println("[EMAIL] Sender not configured, skipping email:", subject)
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Oakridge Education Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("[EMAIL] Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B4332; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B4332; line-height: 1.6; }
			.content h2 { color: #1B4332; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #95D5B2; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Oakridge Education Portal</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message from the Oakridge Education Portal.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendApplicationDecisionEmail notifies an applicant about the review outcome.
func SendApplicationDecisionEmail(email, name, status, reason string) {
	var body string
	if status == "APPROVED" {
		body = fmt.Sprintf(`<p>Hi %s,</p>
			<p>Your membership application has been <strong>approved</strong>. You can now enroll in courses on the portal.</p>`, name)
	} else {
		body = fmt.Sprintf(`<p>Hi %s,</p>
			<p>Your membership application was <strong>rejected</strong>.</p>
			<div class="info-box">%s</div>
			<p>You may update your answers and apply again.</p>`, name, reason)
	}

	go func() {
		if err := SendEmail([]string{email}, "Your Oakridge Membership Application", getEmailTemplate("Application "+status, body)); err != nil {
			log.Printf("[EMAIL] Failed to send application decision to %s: %v", email, err)
		}
	}()
}

// SendCertificateIssuedEmail congratulates a learner on course completion.
func SendCertificateIssuedEmail(email, name, courseName, certificateID string, validUntil time.Time) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box">
			Certificate ID: <strong>%s</strong><br/>
			Valid until: %s
		</div>
		<p>Anyone can verify your certificate on the public verification page using the ID above.</p>`,
		name, courseName, certificateID, validUntil.Format("January 2, 2006"))

	go func() {
		if err := SendEmail([]string{email}, "Your Course Completion Certificate", getEmailTemplate("Certificate Issued", body)); err != nil {
			log.Printf("[EMAIL] Failed to send certificate email to %s: %v", email, err)
		}
	}()
}
