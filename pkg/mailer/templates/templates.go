package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names understood by the email worker.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
)

var verifyEmailHTML = template.Must(template.New(VerifyEmail).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Verify Your Email</h2>
  <p>Hello {{.Name}},</p>
  <p>Thank you for registering. Please verify your email by clicking the button below:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background-color: #4CAF50; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px;">
      Verify Email
    </a>
  </div>
  <p>If the button doesn't work, copy and paste the following link into your browser:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>Best regards,<br>The Blog Team</p>
</div>
`))

var resetPasswordHTML = template.Must(template.New(ResetPassword).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Reset Your Password</h2>
  <p>Hello {{.Name}},</p>
  <p>We received a request to reset your password. Click the button below to choose a new one:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background-color: #4CAF50; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px;">
      Reset Password
    </a>
  </div>
  <p>This link expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.</p>
  <p>Best regards,<br>The Blog Team</p>
</div>
`))

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case VerifyEmail:
		html, err = execute(verifyEmailHTML, data)
		if err != nil {
			return "", "", "", err
		}
		subject = "Verify Your Email Address"
		text = fmt.Sprintf("Please verify your email by clicking on the following link: %v", data["Link"])
		return subject, text, html, nil
	case ResetPassword:
		html, err = execute(resetPasswordHTML, data)
		if err != nil {
			return "", "", "", err
		}
		subject = "Reset Your Password"
		text = fmt.Sprintf("Reset your password using the following link: %v", data["Link"])
		return subject, text, html, nil
	}
	return "", "", "", fmt.Errorf("unknown email template %q", name)
}

func execute(t *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
