// Package csvimport parses, validates and normalizes deal rows coming
// from an uploaded CSV file. Row-level problems are data, not errors:
// the pipeline reports them per row and keeps going.
package csvimport

import "strings"

// ParseCSV tokenizes raw CSV text into rows of fields. Quoted fields may
// contain commas and newlines, and a doubled quote inside a quoted field
// is an escaped literal quote. Line endings may be \n, \r\n or bare \r.
// Rows whose fields are all empty after trimming are dropped.
func ParseCSV(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if !blankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	i := 0
	for i < len(text) {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			field.WriteByte(c)
			i++
			continue
		}

		switch c {
		case '"':
			inQuotes = true
			i++
		case ',':
			endField()
			i++
		case '\n':
			endRow()
			i++
		case '\r':
			endRow()
			if i+1 < len(text) && text[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
		default:
			field.WriteByte(c)
			i++
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}
	return rows
}

func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// RowToRecord zips a header row with a data row into a field-name-keyed
// record. Header names are lower-cased and trimmed; a data row shorter
// than the header yields empty strings, never missing keys.
func RowToRecord(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if i < len(row) {
			rec[key] = row[i]
		} else {
			rec[key] = ""
		}
	}
	return rec
}

// exampleHeader is the fixed column set the validator expects. Order is
// part of the contract with the web client's template download.
const exampleHeader = "client_name,client_phone,client_email,property_address,city,state,zip,deal_type,lead_source_name,pipeline_status,expected_sale_price,actual_sale_price,gross_commission_rate,brokerage_split_rate,referral_out_rate,referral_in_rate,transaction_fee,close_date"

// ExampleCSV returns the downloadable import template: the 18-column
// header plus three illustrative rows.
func ExampleCSV() string {
	rows := []string{
		exampleHeader,
		"John Smith,555-123-4567,john@example.com,123 Main St,Springfield,IL,62704,buyer,Zillow,New Lead,450000,,0.03,0.2,,,395,",
		"Jane Doe,555-987-6543,jane@example.com,456 Oak Ave,Portland,OR,97201,seller,Referral,Under Contract,600000,615000,0.025,0.15,0.25,,495,2024-08-15",
		"Sam Lee,555-222-3333,sam@example.com,789 Pine Rd,Austin,TX,78701,buyer_and_seller,Website,Closed,,520000,0.03,0.1,,0.25,0,07/01/2024",
	}
	return strings.Join(rows, "\n") + "\n"
}
