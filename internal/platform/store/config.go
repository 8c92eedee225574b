package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectAttempts bounds the startup ping loop; <=0 uses the default
	ConnectAttempts int
	// PingTimeout bounds each startup ping; <=0 uses the default
	PingTimeout time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientTag is reported to the server as the role of this process
	ClientTag string
}
