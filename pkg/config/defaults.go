package config

import "time"

const (
	DefaultBackendBaseURL = "http://localhost:4040"

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTemplatesDir = "web/templates"
	DefaultStaticDir    = "web/static"

	DefaultRoomsPerPage    = 5
	DefaultBookingsPerPage = 6

	DefaultErrorNoticeTTL   = 5 * time.Second
	DefaultSuccessNoticeTTL = 2500 * time.Millisecond

	DefaultBackendTimeout = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 5 * 1024 * 1024 // room photos arrive as multipart uploads

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaTopic = "hotel-activity"
)
