package main

import (
	"github.com/spf13/cobra"

	"vin-gateway/internal/config"
)

// v guarda defaults, env e as flags ligadas pelos subcomandos.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "VIN decode gateway",
	Long: `Decodifica VINs via NHTSA vPIC com cache, limite de chamadas ao
provedor e registro de veículos por organização.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn ou error (LOG_LEVEL)")
	rootCmd.PersistentFlags().String("upstream-url", "", "base da API vPIC (UPSTREAM_URL)")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("upstream_url", rootCmd.PersistentFlags().Lookup("upstream-url"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(decodeCmd)
}
