package usecase

import (
	"context"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template (nil = defaults)
	Global bool           // If true, initialize global config; otherwise queue dir config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string `json:"path"` // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file with default template.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	var info domain.ConfigInfo
	var err error
	if in.Global {
		info = uc.configManager.GetGlobalConfigInfo()
		err = uc.configManager.InitGlobalConfig(cfg)
	} else {
		info = uc.configManager.GetQueueConfigInfo()
		err = uc.configManager.InitQueueConfig(cfg)
	}
	if err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: info.Path}, nil
}
