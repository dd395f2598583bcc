package authflow

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/codeblaze/portal/internal/core/domain"
)

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// OTPForm holds the six single-digit boxes of the verification screen.
type OTPForm struct {
	Digits [domain.OTPLength]string `json:"otp" validate:"dive,required,len=1,numeric"`
}

// ParseOTP splits a typed code into the six boxes. Extra characters are dropped
// and missing boxes stay empty.
func ParseOTP(code string) OTPForm {
	var f OTPForm
	for i, r := range []rune(strings.TrimSpace(code)) {
		if i >= domain.OTPLength {
			break
		}
		f.Digits[i] = string(r)
	}
	return f
}

// Complete reports whether every box holds something.
func (f OTPForm) Complete() bool {
	for _, d := range f.Digits {
		if d == "" {
			return false
		}
	}
	return true
}

// Code joins the boxes.
func (f OTPForm) Code() string {
	return strings.Join(f.Digits[:], "")
}

type ForgotPasswordForm struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordForm struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateForm returns the first problem with form as a display message.
func validateForm(form any) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	fe := ve[0]
	switch fe.Tag() {
	case "required":
		if fe.Field() == "otp" || strings.HasPrefix(fe.Field(), "otp[") {
			return errors.New("please enter the complete 6-digit code")
		}
		return fmt.Errorf("%s is required", fe.Field())
	case "email":
		return errors.New("please enter a valid email address")
	case "min":
		return fmt.Errorf("password must be at least %s characters", fe.Param())
	case "eqfield":
		return domain.ErrPasswordMismatch
	case "len", "numeric":
		return errors.New("each code box takes a single digit")
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
