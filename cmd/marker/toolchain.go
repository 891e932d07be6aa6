package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marker/internal/toolchain"
)

var toolchainCmd = &cobra.Command{
	Use:   "toolchain",
	Short: "Show the toolchain and driver marker would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		tc, err := toolchain.Find()
		if err != nil {
			return err
		}
		fmt.Println(tc.Describe())
		if root := toolchain.Sysroot(""); root != "" {
			fmt.Printf("sysroot: %s\n", root)
		}
		return nil
	},
}
