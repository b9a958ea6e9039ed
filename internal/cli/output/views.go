package output

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/pkg/fingerprint"
)

// The view types share their underlying type with the domain values so
// JSON and YAML output is unchanged; they only add a table layout.
type (
	RunView          domain.Run
	RunList          []domain.RunSummary
	ComparisonView   domain.Comparison
	VerificationView domain.Verification
	KernelList       []domain.Kernel
)

// Table lists one row per result, with run metadata in the footer.
func (v *RunView) Table(wide bool) *Table {
	t := &Table{Headers: []string{"KERNEL", "MEAN", "MEDIAN", "MIN", "MAX", "OPS/S", "VALUE", "STATUS"}}
	if wide {
		t.Headers = append(t.Headers, "P95", "STDDEV", "CATEGORY", "SAMPLES")
	}

	for _, r := range v.Results {
		row := []string{
			r.Label,
			FormatDuration(r.Stats.Mean),
			FormatDuration(r.Stats.Median),
			FormatDuration(r.Stats.Min),
			FormatDuration(r.Stats.Max),
			opsPerSec(r.Stats.OpsPerSec),
			dash(r.Value),
			resultStatus(&r),
		}
		if wide {
			row = append(row,
				FormatDuration(r.Stats.P95),
				FormatDuration(r.Stats.StdDev),
				string(r.Category),
				strconv.Itoa(len(r.Samples)),
			)
		}
		t.Rows = append(t.Rows, row)
	}

	run := (*domain.Run)(v)
	t.Footer = []string{
		fmt.Sprintf("run %s  suite=%s  trials=%d  warmup=%d  parallelism=%d",
			run.ID, run.Suite, run.Trials, run.Warmup, run.Parallelism),
		fmt.Sprintf("host %s/%s  %s  cpus=%d  elapsed=%s  failures=%d",
			run.Host.OS, run.Host.Arch, run.Host.GoVersion, run.Host.NumCPU,
			FormatDuration(run.Duration()), run.Failures()),
	}
	if run.Cancelled {
		t.Footer = append(t.Footer, "run was cancelled; results are partial")
	}
	return t
}

func resultStatus(r *domain.Result) string {
	switch {
	case r.Failed():
		return "aborted (" + r.ErrorCode + ")"
	case !r.Consistent:
		return "inconsistent"
	default:
		return "ok"
	}
}

func opsPerSec(v float64) string {
	if v <= 0 {
		return "-"
	}
	value, prefix := humanize.ComputeSI(v)
	return sig3(value) + prefix
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Table lists stored runs newest first.
func (l RunList) Table(wide bool) *Table {
	t := &Table{Headers: []string{"ID", "STARTED", "SUITE", "RESULTS", "FAILURES", "ELAPSED"}}
	if wide {
		t.Headers = append(t.Headers, "AGE", "GO", "PLATFORM", "TRIALS", "PARALLELISM")
	}
	for _, run := range l {
		results := strconv.Itoa(run.Results)
		if run.Cancelled {
			results += " (cancelled)"
		}
		row := []string{
			run.ID,
			FormatTime(run.StartedAt),
			string(run.Suite),
			results,
			strconv.Itoa(run.Failures),
			FormatDuration(run.Elapsed),
		}
		if wide {
			row = append(row,
				humanize.Time(run.StartedAt),
				run.GoVersion,
				run.Platform,
				strconv.Itoa(run.Trials),
				strconv.Itoa(run.Parallelism),
			)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Table lists per-kernel speedups with the geometric mean in the footer.
func (v *ComparisonView) Table(bool) *Table {
	t := &Table{Headers: []string{"KERNEL", "BASELINE", "CURRENT", "SPEEDUP"}}
	for _, s := range v.Speedups {
		t.AddRow(s.Label, FormatDuration(s.BaselineMean), FormatDuration(s.CurrentMean), FormatRatio(s.Ratio))
	}
	t.Footer = []string{
		fmt.Sprintf("baseline %s  current %s  geomean %s", v.BaselineID, v.CurrentID, FormatRatio(v.Geomean)),
	}
	for _, label := range v.Missing {
		t.Footer = append(t.Footer, "not in both runs: "+label)
	}
	return t
}

// FormatRatio renders a speedup as "1.23x", or "-" when undefined.
func FormatRatio(r float64) string {
	if r <= 0 {
		return "-"
	}
	return strconv.FormatFloat(r, 'f', 2, 64) + "x"
}

// Table lists parity checks. Want is shown only in wide mode, and digests
// are shortened unless wide.
func (v *VerificationView) Table(wide bool) *Table {
	t := &Table{Headers: []string{"CHECK", "RESULT", "GOT"}}
	if wide {
		t.Headers = append(t.Headers, "WANT")
	}
	passed := 0
	for _, c := range v.Checks {
		result := "FAIL"
		if c.Pass {
			result = "PASS"
			passed++
		}
		got := c.Got
		if c.Digest && !wide {
			got = fingerprint.Short(got)
		}
		row := []string{c.Name, result, got}
		if wide {
			row = append(row, c.Want)
		}
		t.Rows = append(t.Rows, row)
	}

	verdict := "PASSED"
	if !v.Passed {
		verdict = "FAILED"
	}
	t.Footer = []string{fmt.Sprintf("parity %s (%d/%d)", verdict, passed, len(v.Checks))}
	return t
}

// Table lists catalogue entries.
func (l KernelList) Table(wide bool) *Table {
	t := &Table{Headers: []string{"NAME", "CATEGORY", "RETURNS", "OPS"}}
	if wide {
		t.Headers = append(t.Headers, "UNIT", "EXTENDED", "DESCRIPTION")
	}
	for _, k := range l {
		row := []string{k.Name, string(k.Category), string(k.Returns), humanize.Comma(k.Ops)}
		if wide {
			row = append(row, k.OpsUnit, strconv.FormatBool(k.Extended), k.Description)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
