package utils

import (
	"fmt"
	"log"
	"titanium/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through Sendgrid. Failures are
// logged and swallowed; notification email is best-effort.
func SendEmail(to, subject, htmlBody string) error {
	from := mail.NewEmail("Titanium Training", config.AppConfig.EmailSender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), " ", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid rejected email: %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML shell
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E94560; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TITANIUM TRAINING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Titanium Training. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, firstName string) {
	subject := "Welcome to Titanium Training"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Titanium Training</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now explore our courses and start learning.</p>
	`, firstName)

	go SendEmail(email, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Email verification OTP
func SendOTPEmail(email, otp string) {
	subject := "Email Verification OTP"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>This code expires in 10 minutes. If you did not request it, you can ignore this email.</p>
	`, email, otp)

	go SendEmail(email, subject, getEmailTemplate("Verify Your Email", body))
}

// 3. Password reset OTP
func SendPasswordResetEmail(email, otp string) {
	subject := "Password Reset Request"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password. Your reset code is:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>This code expires in 10 minutes. If you did not request a reset, you can ignore this email and your password will stay unchanged.</p>
	`, email, otp)

	go SendEmail(email, subject, getEmailTemplate("Reset Your Password", body))
}

// 4. Subscription created
func SendSubscriptionCreatedEmail(email string) {
	subject := "Subscribed!"
	body := fmt.Sprintf(`
		<p>Hi %s, Welcome to Titanium Academy. We are glad to have you on board.</p>
		<p>Your subscription is now active. Enjoy full access to all course content.</p>
	`, email)

	go SendEmail(email, subject, getEmailTemplate("Subscription Successful", body))
}

// 5. Subscription expired
func SendSubscriptionExpiredEmail(email string) {
	subject := "Subscription Expired!"
	body := fmt.Sprintf(`
		<p>Hi %s, Your subscription just expired.</p>
		<p>Please renew your subscription to continue enjoying our services.</p>
	`, email)

	go SendEmail(email, subject, getEmailTemplate("Subscription Expired", body))
}
