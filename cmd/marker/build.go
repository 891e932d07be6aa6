package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildManifestFlag string

func init() {
	buildCmd.Flags().StringVar(&buildManifestFlag, "manifest", "", "path to Marker.toml (default: search upward from here)")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch and build the configured lint crates without running them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(buildManifestFlag)
		if err != nil {
			return err
		}
		infos, err := buildLintCrates(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Printf("%s -> %s\n", info.Name, info.Path)
		}
		return nil
	},
}
