package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "봇 목록 출력",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		d, err := initDeps(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		labels, err := d.service.BotLabels(ctx)
		if err != nil {
			return err
		}

		for _, l := range labels {
			fmt.Println(l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(botsCmd)
}
