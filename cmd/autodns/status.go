// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/autodns/src/resolvconf"
)

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the nameservers currently in resolv.conf",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			manager := resolvconf.NewManager(cfg.ResolvConfPath)
			servers, err := manager.Servers()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "%s %s\n", color.New(color.Bold).Sprint("Resolver file:"), manager.Path())
			if len(servers) == 0 {
				fmt.Fprintln(a.stdout, color.YellowString("No nameservers configured"))
				return nil
			}
			for i, s := range servers {
				fmt.Fprintf(a.stdout, "  %d. %s\n", i+1, s)
			}
			return nil
		},
	}
}
