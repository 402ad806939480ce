package clientsync

// LikeState mirrors one slug's like button. Toggling flips the local
// flag and nudges the count before the server answers; the server's
// liked flag and aggregate count are authoritative on success.
type LikeState struct {
	client CounterClient

	state     ActionState
	isLiked   bool
	likeCount int
}

func NewLikeState(client CounterClient) *LikeState {
	return &LikeState{client: client, state: StateIdle}
}

func (l *LikeState) State() ActionState {
	return l.state
}

func (l *LikeState) IsLiked() bool {
	return l.isLiked
}

func (l *LikeState) LikeCount() int {
	return l.likeCount
}

// Load fetches the authoritative status before any toggling happens.
func (l *LikeState) Load(slug string) error {
	count, liked, err := l.client.GetLikeStatus(slug)
	if err != nil {
		return err
	}
	l.likeCount = count
	l.isLiked = liked
	return nil
}

// Toggle runs one optimistic flip. A toggle while another is pending is
// rejected as a no-op so the in-flight delta stays the only one.
func (l *LikeState) Toggle(slug, locale string) error {
	if l.state == StatePending {
		return nil
	}

	prevLiked := l.isLiked
	prevCount := l.likeCount

	l.state = StatePending
	l.isLiked = !prevLiked
	if l.isLiked {
		l.likeCount = prevCount + 1
	} else {
		l.likeCount = prevCount - 1
		if l.likeCount < 0 {
			l.likeCount = 0
		}
	}

	liked, count, err := l.client.ToggleLike(slug, locale)
	if err != nil {
		l.isLiked = prevLiked
		l.likeCount = prevCount
		l.state = StateRolledBack
		return err
	}

	l.isLiked = liked
	l.likeCount = count
	l.state = StateCommitted
	return nil
}
