package config

const (
	EnvBackendBaseURL = "BACKEND_BASE_URL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvCookieAuthSecret = "COOKIE_AUTH_SECRET"
	EnvCookieSecure     = "COOKIE_SECURE"

	EnvTemplatesDir = "TEMPLATES_DIR"
	EnvStaticDir    = "STATIC_DIR"

	EnvRoomsPerPage    = "ROOMS_PER_PAGE"
	EnvBookingsPerPage = "BOOKINGS_PER_PAGE"

	EnvErrorNoticeTTL   = "ERROR_NOTICE_TTL"
	EnvSuccessNoticeTTL = "SUCCESS_NOTICE_TTL"

	EnvBackendTimeout = "BACKEND_TIMEOUT"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"
)
