package service

import (
	"fmt"
	"html"

	"github.com/codeblaze/portal/internal/core/domain"
	"github.com/codeblaze/portal/internal/core/ports"
)

func otpMail(user *domain.User, otp string) ports.Mail {
	minutes := int(domain.OTPTTL.Minutes())
	return ports.Mail{
		To:       user.Email,
		Subject:  "Your CodeBlaze verification code",
		Category: "otp",
		Text: fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n",
			user.Name, otp, minutes),
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in %d minutes.</p>",
			html.EscapeString(user.Name), otp, minutes),
	}
}

func resetMail(user *domain.User, link string) ports.Mail {
	return ports.Mail{
		To:       user.Email,
		Subject:  "Reset your CodeBlaze password",
		Category: "password_reset",
		Text:     fmt.Sprintf("Hi %s,\n\nOpen this link to choose a new password:\n%s\n", user.Name, link),
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Choose a new password</a></p>`,
			html.EscapeString(user.Name), html.EscapeString(link)),
	}
}
