package ports

// ProgressSink receives per-item progress notifications during a batch run.
// Notifications are a side effect only; they carry no correctness weight and
// are called synchronously from the driver's loop.
type ProgressSink interface {
	// OnItemStart is called before an item's codec invocation.
	// index is zero-based; total is the batch size.
	OnItemStart(index, total int, name string)

	// OnItemDone is called after an item's result has been recorded.
	// err is nil on success, otherwise the failure the driver recorded.
	OnItemDone(index, total int, name string, err error)
}
