// Package output renders command results for kernbench.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned table rendering with wide mode
//   - views.go: table layouts for runs, comparisons and parity reports
//   - json.go, yaml.go, csv.go: machine-readable formats
//   - progress.go, spinner.go: terminal feedback while kernels run
package output
