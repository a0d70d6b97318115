package logger

import "go.uber.org/zap"

// New returns a zap logger tuned for the given environment. Production gets
// JSON output at info level, everything else the human-readable development
// config.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
