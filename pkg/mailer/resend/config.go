package resend

// Config holds Resend transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY" validate:"required"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" validate:"omitempty,email"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}
