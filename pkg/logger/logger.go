package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var NOOPLogger = zap.NewNop().Sugar()

// New returns a console logger at debug level for local and test
// environments and a JSON production logger otherwise.
func New(appEnv string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch appEnv {
	case "local", "test", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("env", appEnv), nil
}
