package main

import (
	"fmt"
	"os"
	"strings"

	"process-maps-backend/internal/client"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "procmap",
	Short: "Work with process map boards from the terminal",
	Long: `procmap talks to a process maps server.

Settings are read from flags, PROCMAP_* environment variables and ~/.procmap.yaml:
  server - base URL of the server (default http://localhost:3000)
  token  - session token, see "processmaps token --email"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.procmap.yaml)")
	rootCmd.PersistentFlags().String("server", "http://localhost:3000", "server base URL")
	rootCmd.PersistentFlags().String("token", "", "session token")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and failures")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(generateCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".procmap")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("procmap")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: could not read config %s: %v\n", cfgFile, err)
		}
	}
}

func newClient() *client.Client {
	return client.New(viper.GetString("server"), viper.GetString("token"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
