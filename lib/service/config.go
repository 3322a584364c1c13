package service

type Config struct {
	DatabaseUri             string `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int    `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int    `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN               string `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath             string `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte `envconfig:"JWT_SECRET" required:"true"`
	AdminToken              string `envconfig:"ADMIN_TOKEN"`
	JWTRefreshTokenExpiry   int    `envconfig:"JWT_REFRESH_EXPIRY" default:"604800"` // in seconds, default 7 days
	JWTAccessTokenExpiry    int    `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`  // in seconds, default 2 days
	Host                    string `envconfig:"HOST" default:"localhost:3000"`
	Port                    int    `envconfig:"PORT" default:"3000"`

	// registry composition
	LedgerBackend      string `envconfig:"LEDGER_BACKEND" default:"postgres"` // postgres or memory
	GenderRule         string `envconfig:"GENDER_RULE" default:"parity"`      // parity or threshold
	ExistentialBalance int64  `envconfig:"EXISTENTIAL_BALANCE" default:"1"`
	StartingBalance    int64  `envconfig:"STARTING_BALANCE" default:"0"`

	AllowAccountCreation bool `envconfig:"ALLOW_ACCOUNT_CREATION" default:"true"`
	MinPasswordEntropy   int  `envconfig:"MIN_PASSWORD_ENTROPY" default:"0"`
	DefaultRateLimit     int  `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit      int  `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit       int  `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus     bool `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort       int  `envconfig:"PROMETHEUS_PORT" default:"9092"`

	RabbitMQUri           string `envconfig:"RABBITMQ_URI"`
	RabbitMQEventExchange string `envconfig:"RABBITMQ_EVENT_EXCHANGE" default:"kittyhub_event"`
	WebhookUrl            string `envconfig:"WEBHOOK_URL"`
}
