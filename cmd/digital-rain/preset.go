package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/digital-rain/config"
)

// presetStore is swapped by tests to keep presets in a temp dir
var presetStore = config.DefaultPresets

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named presets",
	}

	// save shares the root flag set so a preset captures exactly what a run would use
	var o rootOptions
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given flags as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := presetStore()
			if err != nil {
				return err
			}
			cfg, err := o.resolve(cmd, store)
			if err != nil {
				return err
			}
			if err := store.Save(args[0], cfg); err != nil {
				return err
			}
			path, _ := store.Path(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}
	bindConfigFlags(save, &o)

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a preset as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := presetStore()
			if err != nil {
				return err
			}
			cfg, err := store.Load(args[0])
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := presetStore()
			if err != nil {
				return err
			}
			names, err := store.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := presetStore()
			if err != nil {
				return err
			}
			return store.Delete(args[0])
		},
	}

	cmd.AddCommand(save, show, list, del)
	return cmd
}
