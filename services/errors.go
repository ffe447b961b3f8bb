package services

import (
	"github.com/samber/oops"
)

// Kind classifies every error returned by the services. The API layer maps
// kinds onto response codes and never renders anything else.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindAuth       Kind = "AUTH"
	KindInternal   Kind = "INTERNAL"
)

// Messages shown to clients.
const (
	MsgRegisterFieldsRequired = "username, password and nickname are required"
	MsgNameTooLong            = "username and nickname must be at most 64 characters long"
	MsgPasswordTooShort       = "Password must be at least 8 characters long"
	MsgPasswordTooLong        = "Password must be at most 72 bytes long"
	MsgCredentialsTaken       = "This username and nickname is taken."
	MsgLoginFieldsRequired    = "username and password are required"
	MsgCredentialsMismatch    = "Credentials didn't match"
	MsgPleaseLogIn            = "Please log in"
	MsgInvalidCharacter       = "Invalid character"
	MsgInternal               = "Internal server error"
)

func newError(domain string, kind Kind, msg string) error {
	return oops.In(domain).Code(string(kind)).New(msg)
}

func internalError(domain string, err error, format string, args ...any) error {
	return oops.In(domain).Code(string(KindInternal)).Wrapf(err, format, args...)
}

// KindOf returns the kind of err. Errors that do not carry a known kind are
// internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		code := oopsErr.Code()
		for _, kind := range []Kind{KindValidation, KindConflict, KindAuth} {
			if code == string(kind) {
				return kind
			}
		}
	}
	return KindInternal
}

// PublicMessage returns the text of err that is safe to show to a client.
// Internal errors always collapse to MsgInternal.
func PublicMessage(err error) string {
	if KindOf(err) == KindInternal {
		return MsgInternal
	}
	return err.Error()
}
