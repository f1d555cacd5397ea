package store

// GetOptions collects the optional behaviors of point and bulk reads.
type GetOptions struct {
	// ForUpdate requests a row-level lock held until the enclosing
	// transaction ends. Callers set it when they intend a subsequent
	// conditional write on the fetched rows.
	ForUpdate bool
}

// GetOption customizes a read operation.
type GetOption func(*GetOptions)

// ForUpdate locks the selected rows for the duration of the enclosing
// transaction.
func ForUpdate() GetOption {
	return func(o *GetOptions) { o.ForUpdate = true }
}

// ApplyGetOptions folds a list of options into a GetOptions value.
func ApplyGetOptions(opts []GetOption) GetOptions {
	var o GetOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Page bounds a bulk read. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}
