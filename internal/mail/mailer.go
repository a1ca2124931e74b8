// Package mail constructs and delivers the service's outbound email: the
// welcome message and the verification / password-reset one-time codes.
package mail

import (
	"context"
	"fmt"
)

// Mailer delivers account email. Implementations must not log the OTP value.
type Mailer interface {
	// SendWelcome sends the post-registration greeting. Callers treat
	// failure as non-fatal.
	SendWelcome(ctx context.Context, to, name string) error
	// SendVerifyOTP sends an account-verification code.
	SendVerifyOTP(ctx context.Context, to, code string) error
	// SendResetOTP sends a password-reset code.
	SendResetOTP(ctx context.Context, to, code string) error
}

func welcomeBody(to, name string) (subject, body string) {
	subject = "Welcome aboard"
	body = fmt.Sprintf("Hello %s,\n\nYour account has been created with the email %s.\n", name, to)
	return subject, body
}

func verifyOTPBody(code string) (subject, body string) {
	subject = "Account verification code"
	body = fmt.Sprintf("Your verification code is %s. It expires in 24 hours.\n", code)
	return subject, body
}

func resetOTPBody(code string) (subject, body string) {
	subject = "Password reset code"
	body = fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.\n", code)
	return subject, body
}
