package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sniftern/internguard/internal/company"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export company statistics to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.FindAll(ctx)
		if err != nil {
			return eris.Wrap(err, "export: load companies")
		}

		if err := writeWorkbook(records, exportOutput); err != nil {
			return err
		}

		zap.L().Info("exported company stats",
			zap.String("output", exportOutput),
			zap.Int("companies", len(records)),
		)
		return nil
	},
}

func writeWorkbook(records []company.CompanyRecord, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Company", "Website", "Total", "Real", "Fake", "Fraud %", "Fake Patterns",
	} {
		header.AddCell().Value = h
	}

	for i := range records {
		rec := &records[i]
		row := sheet.AddRow()
		row.AddCell().Value = rec.CompanyName
		row.AddCell().Value = rec.CompanyWebsite
		row.AddCell().SetInt(rec.TotalCount)
		row.AddCell().SetInt(rec.RealCount)
		row.AddCell().SetInt(rec.FakeCount)
		row.AddCell().SetFloat(rec.FraudPercentage)
		row.AddCell().Value = strings.Join(rec.Fake.PatternMatches, ", ")
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "internguard.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
