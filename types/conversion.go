package types

// ConversionStatus is the outcome of a single file conversion
type ConversionStatus string

const (
	ConversionSucceeded ConversionStatus = "succeeded"
	ConversionFailed    ConversionStatus = "failed"
)

// ConversionResult is the per-file outcome of a conversion. Results are
// produced in the same order as the inputs they belong to.
type ConversionResult struct {
	InputPath  string           `json:"inputPath"`
	OutputPath string           `json:"outputPath,omitempty"`
	Status     ConversionStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
}

// Succeeded reports whether the file converted cleanly.
func (r ConversionResult) Succeeded() bool {
	return r.Status == ConversionSucceeded
}

// ConversionSummary aggregates the outcome of one batch run.
type ConversionSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize folds a result list into counts.
func Summarize(results []ConversionResult) ConversionSummary {
	summary := ConversionSummary{Total: len(results)}
	for _, r := range results {
		if r.Succeeded() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}
