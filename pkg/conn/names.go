package conn

// Well-known stage names. Configuration steps address each other through
// these when they make order-dependent decisions.
const (
	// InitStage is the one-shot initializer installed by a finalized template.
	InitStage = "bootstrap.init"
	// BridgeStage is the terminal bridge to the application, always last.
	BridgeStage = "bootstrap.bridge"
	// LoggingStage is the traffic logging stage.
	LoggingStage = "logging"
	// TLSStage is the TLS stage.
	TLSStage = "tls"
	// TLSLoggingStage is the extra trace logger inserted before TLSStage.
	TLSLoggingStage = "tls.logging"
)
