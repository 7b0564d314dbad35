// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package cmd wires the tlsnode demo binary's subcommands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	logger       *zap.Logger
	identityPath string
)

var rootCmd = &cobra.Command{
	Use:   "tlsnode",
	Short: "Demonstrates the libp2p-compatible TLS security upgrade over raw TCP",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().StringVar(&identityPath, "identity", "",
		"path to a saved identity key; a fresh one is generated (and saved there) when the file doesn't exist")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initLogger() {
	level := zap.InfoLevel
	_ = level.UnmarshalText([]byte(viper.GetString("log-level")))

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)

	built, err := cfg.Build()
	if err != nil {
		built = zap.NewNop()
	}
	logger = built
}
