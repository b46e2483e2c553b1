package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "animseq",
	Short: "animseq schedules and streams sequences of style animations",
	Long: `animseq reads a YAML sequence of transition and keyframe steps, lays them
out on a timeline and renders each step's style, either once (plan), over
MQTT (stream) or behind an HTTP control surface (serve).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
