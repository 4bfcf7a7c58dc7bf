// Package csv implements CSV import and export of struct slices.
//
// It wraps gocsv for the actual encoding, adding header validation and a
// pair of tolerant cell types for the messy values real-world exports
// contain.
//
// # Cell Types
//
//   - Date: accepts slash, dash, dot, ISO and compact layouts with two- or
//     four-digit years. Two-digit years are resolved against a pivot: a date
//     that would land more than TwoDigitYearPivot years in the future is
//     assumed to belong to the previous century.
//   - Decimal: accepts thousands separators and leading currency signs.
//
// # Usage
//
//	type Row struct {
//	    Name   string      `csv:"name"`
//	    Joined csv.Date    `csv:"joined"`
//	    Amount csv.Decimal `csv:"amount"`
//	}
//
//	rows, err := csv.Import[Row](file)
package csv
