package storage

import (
	"encoding/json"
	"fmt"

	"github.com/yndnr/kernbench-go/internal/core/domain"
)

const runPrefix = "run/"

func runKey(id string) []byte {
	return []byte(runPrefix + id)
}

func encodeRun(run *domain.Run) ([]byte, error) {
	b, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	return b, nil
}

func decodeRun(b []byte) (*domain.Run, error) {
	var run domain.Run
	if err := json.Unmarshal(b, &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &run, nil
}
