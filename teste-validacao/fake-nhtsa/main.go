// fake-nhtsa responde DecodeVin no formato do vPIC para rodar o gateway
// localmente (UPSTREAM_URL=http://localhost:8081/api/vehicles).
//
// VINs terminados em "000" voltam sem resultados; terminados em "999"
// respondem 500.
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

type result struct {
	Variable string  `json:"Variable"`
	Value    *string `json:"Value"`
}

type response struct {
	Count          int      `json:"Count"`
	Message        string   `json:"Message"`
	SearchCriteria string   `json:"SearchCriteria"`
	Results        []result `json:"Results"`
}

func str(s string) *string { return &s }

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vehicles/DecodeVin/{vin}", func(w http.ResponseWriter, r *http.Request) {
		vin := strings.ToUpper(r.PathValue("vin"))
		logger.Info("decode", "vin", vin)

		if strings.HasSuffix(vin, "999") {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}

		resp := response{
			Message:        "Results returned successfully",
			SearchCriteria: "VIN:" + vin,
		}
		if !strings.HasSuffix(vin, "000") {
			resp.Results = []result{
				{Variable: "Manufacturer Name", Value: str("HONDA")},
				{Variable: "Model", Value: str("Accord")},
				{Variable: "Model Year", Value: str("2003")},
				{Variable: "Trim", Value: nil},
			}
		} else {
			resp.Results = []result{}
		}
		resp.Count = len(resp.Results)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}
	logger.Info("fake vPIC listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
