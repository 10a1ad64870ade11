package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type loggerConfig struct {
	Logger struct {
		Level      int8     `yaml:"level"`
		Encoding   string   `yaml:"encoding"`
		OutputPath []string `yaml:"outputPath"`
	}
}

// builds logger from "logger" section of app config file
func InitLogger(cfgPath string) (*zap.SugaredLogger, error) {
	cfg, err := readLoggerConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return New(cfg.Logger.Level, cfg.Logger.Encoding, cfg.Logger.OutputPath)
}

func New(level int8, encoding string, outputPaths []string) (*zap.SugaredLogger, error) {
	if encoding == "" {
		encoding = "console"
	}
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(zapcore.Level(level)),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Sampling:          nil,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputPaths,
		ErrorOutputPaths: []string{
			"stderr",
		},
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("cannot build logger: %w", err)
	}
	return l.Sugar(), nil
}

func readLoggerConfig(cfgPath string) (*loggerConfig, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file because of: %w", err)
	}
	defer f.Close()

	cfg := &loggerConfig{}

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot parse logger config because of: %w", err)
	}
	return cfg, nil
}
