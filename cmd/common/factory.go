package common

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonesrussell/companyfinder/internal/config"
	"github.com/jonesrussell/companyfinder/internal/logger"
)

// NewCommandDeps creates CommandDeps by loading config and creating a logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	logLevel := viper.GetString("logger.level")
	if logLevel == "" {
		logLevel = "info"
	}
	logLevel = strings.ToLower(logLevel)

	logCfg := &logger.Config{
		Level:       logger.Level(logLevel),
		Development: viper.GetBool("logger.development"),
		Encoding:    viper.GetString("logger.encoding"),
		OutputPaths: viper.GetStringSlice("logger.output_paths"),
		EnableColor: viper.GetBool("logger.enable_color"),
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
