package constants

// Environment variable names.
const (
	EnvSlackWebhook = "SLACK_WEBHOOK"
	EnvChannelName  = "CHANNEL_NAME"
	EnvUsername     = "USERNAME"
	EnvLogLevel     = "LOG_LEVEL"
)

const (
	DefaultUsername = "SnsToSlackLambda"
	DefaultLogLevel = "info"
	IconEmoji       = ":bomb:"
	EnvFile         = ".env.yaml"
	ContentType     = "application/json"
)
