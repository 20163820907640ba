package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/packethost/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opsmesh/fabinv/session"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fabinv",
	Short: "switch fabric inventory client",
}

// connect logs in to the management endpoint configured through FABINV_*
// environment variables and hands back a ready session.
func connect(ctx context.Context) (*session.Session, log.Logger) {
	logger, err := log.Init("github.com/opsmesh/fabinv")
	if err != nil {
		panic(err)
	}

	s, err := session.New(logger, session.FromEnv())
	if err != nil {
		logger.Fatal(err)
	}
	if err := s.Login(ctx); err != nil {
		logger.Fatal(err)
	}
	return s, logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
