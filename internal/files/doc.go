// Package files provides discovery of dataset files on disk: raw TSV bulk
// downloads, converted CSVs and Excel workbooks.
package files
