package mail

import "fmt"

func welcomeText(name, frontendURL string) string {
	return fmt.Sprintf(`Hi %s,

Welcome to WorkCompass! We're excited to help you track your job applications
and career progress.

Get started: %s/dashboard

Happy job hunting!
The WorkCompass Team
`, displayName(name), frontendURL)
}

func welcomeHTML(name, frontendURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #2563eb;">Welcome to WorkCompass!</h1>
  <p>Hi %s,</p>
  <p>Welcome to WorkCompass! We're excited to help you track your job applications and career progress.</p>
  <p>You can now:</p>
  <ul>
    <li>Track all your job applications in one place</li>
    <li>Monitor application status and progress</li>
    <li>Set reminders for follow-ups</li>
  </ul>
  <p><a href="%s/dashboard" style="background: #2563eb; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; display: inline-block;">Get Started</a></p>
  <p style="color: #9ca3af; font-size: 12px;">Happy job hunting!<br>The WorkCompass Team</p>
</div>`, displayName(name), frontendURL)
}

func resetText(name, resetURL string) string {
	return fmt.Sprintf(`WorkCompass - Password Reset Request

Hi %s,

We received a request to reset your password for your WorkCompass account.

Click this link to reset your password: %s

This link will expire in 1 hour for security reasons.

If you didn't request this password reset, you can safely ignore this email.
`, displayName(name), resetURL)
}

func resetHTML(name, resetURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #2563eb;">WorkCompass</h1>
  <h2>Password Reset Request</h2>
  <p>Hi %s,</p>
  <p>We received a request to reset your password for your WorkCompass account.
     Click the button below to set a new password:</p>
  <p><a href="%s" style="background: #2563eb; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; display: inline-block;">Reset Password</a></p>
  <p style="color: #6b7280; font-size: 14px;">This link will expire in 1 hour for security reasons.</p>
  <p style="color: #9ca3af; font-size: 12px;">If you didn't request this password reset, you can safely ignore this email.</p>
</div>`, displayName(name), resetURL)
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
