package lfqueue

// These hooks are intended solely for test instrumentation and must not perform
// mutating operations that affect production correctness.
var (
	// offerBeforeLinkHook is invoked right before Offer attempts its splice CAS.
	offerBeforeLinkHook func(pred, cur any)

	// pollAfterMarkHook is invoked after Poll marks a node and before it tries
	// to unlink it.
	pollAfterMarkHook func(top any)
)
