// Package batch evaluates many offset scenarios at once.
//
// Scenarios are read from the first sheet of an XLSX workbook, split into
// fixed-size chunks and evaluated concurrently. A row that fails to parse or
// calculate records its own error; the rest of the batch still runs. Results
// keep the order of the input rows.
package batch
