package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"vin-gateway/internal/config"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <VIN>",
	Short: "Decodifica um VIN pelo mesmo pipeline do servidor e imprime o JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		// stdout fica só com o resultado.
		logger := newLogger(os.Stderr, cfg.LogLevel)

		a, err := buildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.gateway.Decode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
