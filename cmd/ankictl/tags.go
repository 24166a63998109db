package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ankictl/internal/browse"
	"ankictl/internal/hierarchy"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		tags, err := newClient(cfg).GetTags(ctx)
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the tag hierarchy interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		tags, err := newClient(cfg).GetTags(ctx)
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		return browse.Run(hierarchy.Build(tags))
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(browseCmd)
}
