package smtp

import "errors"

var (
	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = errors.New("smtp: invalid config")
	// ErrNoRecipients is returned when To/CC/BCC are all empty.
	ErrNoRecipients = errors.New("smtp: no recipients provided")
	// ErrNoSender is returned when both Message.From and Config.From are empty.
	ErrNoSender = errors.New("smtp: no sender provided")
	// ErrStartTLSUnsupported is returned in starttls mode when the server does
	// not advertise STARTTLS. Use TLSModePlain to send unencrypted.
	ErrStartTLSUnsupported = errors.New("smtp: server does not support STARTTLS")
)
