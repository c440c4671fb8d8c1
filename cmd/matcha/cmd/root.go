package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matcha",
	Short: "matcha evolves stellar-mass-selected galaxy populations through cosmic time",
	Long: `
matcha matches galaxy populations to dark-matter halos by abundance,
evolves the halos backwards along their median growth histories, and
recovers the stellar mass hosted by each progenitor from the galaxy
stellar mass function at its epoch.

Halo mass functions are fetched from an external calculator configured
in the config file.
`,
}

var configOverride string

func init() {
	rootCmd.PersistentFlags().StringVar(&configOverride, "config", "", "Fully qualified path to a configuration override file")
	rootCmd.AddCommand(tracksCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
