package variant

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/yndnr/kernbench-go/pkg/kernel"
)

const (
	queryIterations = 100
	querySelector   = "items.#"
)

// JSONQuery builds the text payload 100 times and resolves the record count
// with a gjson selector instead of a delimiter scan.
func JSONQuery() {
	for i := 0; i < queryIterations; i++ {
		_ = gjson.GetBytes(kernel.TextPayload(), querySelector).Int()
	}
}

// QueryRecord returns the name and value of record i in the text payload.
func QueryRecord(i int) (string, int64) {
	doc := kernel.TextPayload()
	r := gjson.GetManyBytes(doc, recordPath(i, "name"), recordPath(i, "value"))
	return r[0].String(), r[1].Int()
}

func recordPath(i int, field string) string {
	return "items." + strconv.Itoa(i) + "." + field
}
