package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ifj25/internal/prof"
)

// setupProfiling starts the profiles named by --cpu-profile, --mem-profile
// and --runtime-trace. The cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var (
		cfg prof.Config
		err error
	)
	if cfg.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemPath, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.TracePath, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			log.WithError(err).Warn("profiling: failed to write profiles")
		}
	}, nil
}
