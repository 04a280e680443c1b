package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"slotsense/domain/setting"
	"slotsense/domain/snapshot"
	"slotsense/domain/stats"
)

var ratioKeys = []string{stats.Key6vs1, stats.Key6vs2, stats.Key6vs4, stats.Key6vs5, stats.KeyHighVsLow}

// SnapshotHeaders lists the columns of the Snapshots sheet
func SnapshotHeaders() []string {
	headers := []string{"id", "created_at"}
	headers = append(headers, CounterHeaders()...)
	for _, s := range setting.All() {
		headers = append(headers, "p"+s.String())
	}
	headers = append(headers, ratioKeys...)
	return append(headers,
		"mostLikelySetting", "maxProbability", "highSettingProbability",
		"recommendation", "confidence", "statisticalStrength",
		"varianceRatio", "varianceConclusion", "fingerprint",
	)
}

// WriteSnapshots writes a history workbook: one row per snapshot on the
// Snapshots sheet, one row per judged channel on the Variance sheet.
func WriteSnapshots(w io.Writer, snaps []*snapshot.Snapshot) error {
	f, err := build(snaps)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the history workbook to path
func WriteFile(path string, snaps []*snapshot.Snapshot) error {
	f, err := build(snaps)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func build(snaps []*snapshot.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SnapshotSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(VarianceSheet); err != nil {
		f.Close()
		return nil, err
	}

	rows := make([][]interface{}, 0, len(snaps))
	var varianceRows [][]interface{}
	for _, s := range snaps {
		rows = append(rows, snapshotRow(s))
		for _, cv := range s.Result.Variance.Channels {
			varianceRows = append(varianceRows, []interface{}{
				s.ID.String(), string(cv.Channel), cv.UpperVariance, cv.NormalProb, cv.Ratio, cv.Conclusion, string(cv.Confidence),
			})
		}
	}

	if err := writeSheet(f, SnapshotSheet, SnapshotHeaders(), rows); err != nil {
		f.Close()
		return nil, err
	}
	varianceHeaders := []string{"id", "channel", "upperVariance", "normalProb", "ratio", "conclusion", "confidence"}
	if err := writeSheet(f, VarianceSheet, varianceHeaders, varianceRows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func snapshotRow(s *snapshot.Snapshot) []interface{} {
	r := s.Result
	row := []interface{}{s.ID.String(), s.CreatedAt.String()}
	row = append(row, counterValues(s.Counters)...)
	for _, st := range setting.All() {
		row = append(row, r.Posterior[st])
	}
	for _, key := range ratioKeys {
		ratio := r.Ratios[key]
		if ratio.IsInf() {
			row = append(row, ratio.String())
		} else {
			row = append(row, ratio.Float64())
		}
	}
	return append(row,
		int(r.Conclusion.MostLikelySetting), r.Conclusion.MaxProbability, r.Conclusion.HighSettingProbability,
		string(r.Conclusion.Recommendation), string(r.Conclusion.ConfidenceLevel), string(r.Conclusion.StatisticalStrength),
		r.Variance.OverallRatio, r.Variance.OverallConclusion, r.Fingerprint.String(),
	)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
