package clientsync

// ViewTracker applies the automatic view increment exactly once per
// mount. The displayed count moves up immediately and is reconciled
// with the server's value, or reverted if the request fails.
type ViewTracker struct {
	client CounterClient

	state     ActionState
	fired     bool
	viewCount int
}

func NewViewTracker(client CounterClient, initialCount int) *ViewTracker {
	return &ViewTracker{
		client:    client,
		state:     StateIdle,
		viewCount: initialCount,
	}
}

func (t *ViewTracker) State() ActionState {
	return t.state
}

func (t *ViewTracker) ViewCount() int {
	return t.viewCount
}

// RecordView fires the one-shot view increment. Later calls are no-ops
// regardless of whether the first attempt committed or rolled back.
func (t *ViewTracker) RecordView(slug, locale string) error {
	if t.fired {
		return nil
	}
	t.fired = true

	prev := t.viewCount
	t.state = StatePending
	t.viewCount = prev + 1

	count, err := t.client.IncrementView(slug, locale)
	if err != nil {
		t.viewCount = prev
		t.state = StateRolledBack
		return err
	}

	t.viewCount = count
	t.state = StateCommitted
	return nil
}
