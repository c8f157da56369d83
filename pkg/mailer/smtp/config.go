package smtp

// TLS modes.
const (
	// TLSModeStartTLS starts plain and upgrades with STARTTLS (port 587).
	// Delivery fails if the server does not offer STARTTLS.
	TLSModeStartTLS = "starttls"
	// TLSModeTLS connects over TLS directly (port 465).
	TLSModeTLS = "tls"
	// TLSModePlain never encrypts. Development only.
	TLSModePlain = "plain"
)

// Config holds SMTP transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string `env:"SMTP_HOST" validate:"required,hostname|ip"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD" validate:"required_with=Username"`
	TLSMode  string `env:"SMTP_TLS_MODE" envDefault:"starttls" validate:"omitempty,oneof=starttls tls plain"`
	// From is used when a message has no sender.
	From string `env:"SMTP_FROM"`
	Port int    `env:"SMTP_PORT" envDefault:"587" validate:"required,min=1,max=65535"`
	// InsecureSkipVerify disables certificate checks. Tests and local relays only.
	InsecureSkipVerify bool `env:"SMTP_INSECURE_SKIP_VERIFY"`
}
