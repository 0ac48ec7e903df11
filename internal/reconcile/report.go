package reconcile

// BatchOptions bound the amount of mutation a single invocation may perform.
// A BatchSize of 0 means unlimited. Skipped items never consume budget, so
// repeated calls with the same options make monotonic progress.
type BatchOptions struct {
	DryRun    bool
	BatchSize int
}

// exhausted reports whether the batch budget is used up.
func (o BatchOptions) exhausted(processed int) bool {
	return o.BatchSize > 0 && processed >= o.BatchSize
}

// ItemError records a single item that failed mid-operation. Per-item failures
// never abort the run; they are collected and surfaced in the report.
type ItemError struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

func itemErr(item string, err error) ItemError {
	return ItemError{Item: item, Reason: err.Error()}
}
