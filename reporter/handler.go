package reporter

// Reporter is invoked for every error the compiler encounters. Per §7's
// propagation policy, the compiler aborts after the first error and reports
// exactly one diagnostic: a Reporter that wants default behavior should
// simply return the error unchanged (the zero-value Handler does this).
type Reporter func(err ErrorWithPos) error

// Handler accumulates the first error reported to it and short-circuits all
// further work. It deliberately does not support warnings or continued
// collection of multiple errors: §7 mandates a single diagnostic per
// compile.
type Handler struct {
	reporter Reporter
	err      error
	reported bool
}

// NewHandler constructs a Handler. A nil reporter uses the default policy:
// every reported error is immediately fatal.
func NewHandler(r Reporter) *Handler {
	return &Handler{reporter: r}
}

// HandleError reports err. If this is the first error seen, it is recorded
// and returned so the caller can abort immediately. A configured Reporter
// may swallow the error by returning nil, in which case HandleError also
// returns nil so the caller continues - but Reported still remembers that
// something was wrong, so the top-level compile can still fail with
// ErrInvalidSource instead of reporting success over broken state.
func (h *Handler) HandleError(err ErrorWithPos) error {
	h.reported = true
	if h.err != nil {
		return h.err
	}
	if h.reporter != nil {
		if rerr := h.reporter(err); rerr != nil {
			h.err = rerr
			return rerr
		}
		return nil
	}
	h.err = err
	return err
}

// Error returns the first error reported to this handler, or nil.
func (h *Handler) Error() error { return h.err }

// Reported reports whether any error was ever handled, regardless of
// whether a configured Reporter chose to suppress it by returning nil.
func (h *Handler) Reported() bool { return h.reported }
