package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/fetcher"
	"github.com/metrolens/metrolens/internal/format"
	"github.com/metrolens/metrolens/internal/oews"
)

var (
	oewsURL    string
	oewsYear   int
	oewsOutput string
	oewsInput  string
)

var fetchOEWSCmd = &cobra.Command{
	Use:   "fetch-oews",
	Short: "Download and process the BLS OEWS MSA workbook into static wage JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rawDir := filepath.Join(cfg.Data.Dir, "raw", "oews")
		if err := os.MkdirAll(rawDir, 0o755); err != nil {
			return eris.Wrap(err, "create raw dir")
		}

		workbook := oewsInput
		if workbook == "" {
			f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
				RateLimiters: fetcher.DefaultRateLimiters(),
			})

			resultPath := filepath.Join(rawDir, "fetch-result.yaml")
			zipPath := filepath.Join(rawDir, filepath.Base(oewsURL))
			zap.L().Info("downloading OEWS archive", zap.String("url", oewsURL))
			bytes, err := f.DownloadToFile(ctx, oewsURL, zipPath)
			if err != nil {
				return eris.Wrap(err, "download OEWS archive")
			}

			sha, err := oews.FileSHA256(zipPath)
			if err != nil {
				return err
			}

			prev, err := oews.ReadResult(resultPath)
			if err != nil {
				return err
			}
			if prev != nil && prev.SHA256 == sha && len(prev.XLSXPaths) > 0 {
				zap.L().Info("archive unchanged since last fetch, reusing extraction",
					zap.String("sha256", sha),
				)
				workbook = prev.XLSXPaths[0]
			} else {
				extracted, err := fetcher.ExtractZIP(zipPath, filepath.Join(rawDir, "msa"))
				if err != nil {
					return eris.Wrap(err, "extract OEWS archive")
				}

				var xlsxPaths []string
				for _, p := range extracted {
					if strings.HasSuffix(strings.ToLower(p), ".xlsx") {
						xlsxPaths = append(xlsxPaths, p)
					}
				}
				if len(xlsxPaths) == 0 {
					return eris.New("no workbook found in OEWS archive")
				}
				workbook = xlsxPaths[0]

				result := oews.FetchResult{
					Status:       "downloaded",
					URL:          oewsURL,
					Bytes:        bytes,
					SHA256:       sha,
					XLSXPaths:    xlsxPaths,
					DownloadedAt: time.Now().UTC(),
				}
				if err := oews.WriteResult(resultPath, result); err != nil {
					return err
				}
			}
		}

		zap.L().Info("processing workbook", zap.String("path", workbook))
		rows, err := fetcher.ReadXLSX(workbook, fetcher.XLSXOptions{})
		if err != nil {
			return err
		}

		records, err := oews.Process(rows, oewsYear)
		if err != nil {
			return err
		}

		if missing := oews.MissingMSAs(records); len(missing) > 0 {
			zap.L().Warn("metros missing from workbook", zap.Strings("cbsa", missing))
		}
		for _, a := range oews.Anomalies(records) {
			zap.L().Warn("anomalous median wage",
				zap.String("msa", a.MSAName),
				zap.String("soc", a.SOC),
				zap.String("median", format.Wage(a.MedianAnnual)),
			)
		}

		out := oewsOutput
		if out == "" {
			out = filepath.Join(cfg.Data.Dir, "oews_fl_msa.json")
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal records")
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return eris.Wrap(err, "write output")
		}

		zap.L().Info("wrote wage file", zap.String("path", out), zap.Int("records", len(records)))
		return nil
	},
}

func init() {
	fetchOEWSCmd.Flags().StringVar(&oewsURL, "url", "https://www.bls.gov/oes/special-requests/oesm24ma.zip", "OEWS MSA archive URL")
	fetchOEWSCmd.Flags().IntVar(&oewsYear, "year", 2024, "release year stamped on records")
	fetchOEWSCmd.Flags().StringVar(&oewsOutput, "output", "", "output JSON path (default <data dir>/oews_fl_msa.json)")
	fetchOEWSCmd.Flags().StringVar(&oewsInput, "input", "", "process an already-downloaded workbook instead of fetching")
	rootCmd.AddCommand(fetchOEWSCmd)
}
