package main

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-roam/internal/config"
	"github.com/Faultbox/midgard-roam/internal/logger"
)

// cmdSave writes the effective config so later runs pick it up.
func cmdSave(cfg *config.Config, args []string) error {
	path := config.OutputPath()
	if path == "" && len(args) > 0 {
		path = args[0]
	}

	var err error
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "roam.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	logger.Info("config saved", zap.String("path", path))
	fmt.Printf("Saved %s\n", path)
	return nil
}
