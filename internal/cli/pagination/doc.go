// Package pagination provides sorting and paging for CLI list output.
//
// It contains:
//   - Params: --limit/--offset and --page/--page-size flag values and validation
//   - Meta: response metadata for paged results
//   - OutcomeSorter: field sorting for batch scenario outcomes
//
// The summary of a batch always covers every scenario; paging only narrows
// what is rendered.
package pagination
