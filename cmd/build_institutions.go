package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/institutions"
)

var (
	institutionsInput     string
	institutionsOutput    string
	institutionsCrosswalk string
)

var buildInstitutionsCmd = &cobra.Command{
	Use:   "build-institutions",
	Short: "Aggregate an IPEDS institution dump into the precomputed counts file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(institutionsInput)
		if err != nil {
			return eris.Wrap(err, "read IPEDS dump")
		}
		var recs []institutions.IPEDSRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return eris.Wrap(err, "parse IPEDS dump")
		}

		crosswalk := institutions.DefaultFIPSToMSA()
		if institutionsCrosswalk != "" {
			xw, err := os.ReadFile(institutionsCrosswalk)
			if err != nil {
				return eris.Wrap(err, "read crosswalk")
			}
			crosswalk = make(map[string]string)
			if err := json.Unmarshal(xw, &crosswalk); err != nil {
				return eris.Wrap(err, "parse crosswalk")
			}
		}

		agg := institutions.Aggregate(recs, crosswalk)

		out := institutionsOutput
		if out == "" {
			out = filepath.Join(cfg.Data.Dir, cfg.Data.InstitutionsFile)
		}
		payload, err := json.MarshalIndent(agg, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal aggregation")
		}
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			return eris.Wrap(err, "write output")
		}

		zap.L().Info("wrote institutions file",
			zap.String("path", out),
			zap.Int("institutions", agg.Total),
			zap.Int("counties", len(agg.CountyCounts)),
			zap.Int("msas", len(agg.MSACounts)),
		)
		return nil
	},
}

func init() {
	buildInstitutionsCmd.Flags().StringVar(&institutionsInput, "input", "", "IPEDS institution dump (JSON)")
	buildInstitutionsCmd.Flags().StringVar(&institutionsOutput, "output", "", "output path (default <data dir>/<institutions file>)")
	buildInstitutionsCmd.Flags().StringVar(&institutionsCrosswalk, "crosswalk", "", "county FIPS to MSA crosswalk JSON (default built-in)")
	_ = buildInstitutionsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(buildInstitutionsCmd)
}
