package domain

// ConversionResult records the outcome of converting a single item.
// It is created by the conversion driver and never mutated afterward.
type ConversionResult struct {
	// ItemName is the original input file name.
	ItemName string `json:"item"`

	// OutputName is the derived dataset file name. Set on success only.
	OutputName string `json:"output,omitempty"`

	// Output holds the converted dataset bytes. Set on success only.
	Output []byte `json:"-"`

	// Err is the human-readable failure message. Empty on success.
	Err string `json:"error,omitempty"`
}

// OK reports whether the item converted successfully.
func (r ConversionResult) OK() bool {
	return r.Err == ""
}

// BatchReport is the final accounting of one batch run.
// Succeeded and Failed each preserve resolver order, and
// len(Succeeded)+len(Failed) always equals Total.
type BatchReport struct {
	Total     int                `json:"total"`
	Succeeded []ConversionResult `json:"succeeded"`
	Failed    []ConversionResult `json:"failed"`
}

// NewBatchReport creates an empty report sized for n items.
func NewBatchReport(n int) *BatchReport {
	return &BatchReport{
		Total:     n,
		Succeeded: make([]ConversionResult, 0, n),
		Failed:    make([]ConversionResult, 0),
	}
}

// Record appends a result to the matching partition.
func (b *BatchReport) Record(r ConversionResult) {
	if r.OK() {
		b.Succeeded = append(b.Succeeded, r)
	} else {
		b.Failed = append(b.Failed, r)
	}
}

// Complete reports whether every item has been accounted for.
func (b *BatchReport) Complete() bool {
	return len(b.Succeeded)+len(b.Failed) == b.Total
}
