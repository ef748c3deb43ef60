package ledger

// VoteDirection selects which vote set a toggle applies to.
type VoteDirection int

const (
	VoteUp VoteDirection = iota
	VoteDown
)

// VoteTally holds the post-mutation sizes of both vote sets.
type VoteTally struct {
	Up   int
	Down int
}

// ToggleVote applies one vote press. Pressing the same direction twice
// removes the vote; pressing the opposite direction switches it in a single
// step, so a user is never in both sets.
func (e *Engine) ToggleVote(id int64, userID string, dir VoteDirection) (VoteTally, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Suggestions[id]
	if !ok {
		return VoteTally{}, ErrNotFound
	}

	prevUp := append([]string(nil), rec.Upvotes...)
	prevDown := append([]string(nil), rec.Downvotes...)

	same, other := &rec.Upvotes, &rec.Downvotes
	if dir == VoteDown {
		same, other = other, same
	}

	if containsUser(*same, userID) {
		*same = removeUser(*same, userID)
	} else {
		*same = append(*same, userID)
		*other = removeUser(*other, userID)
	}

	tally := VoteTally{Up: len(rec.Upvotes), Down: len(rec.Downvotes)}
	if err := e.persistLocked(); err != nil {
		rec.Upvotes, rec.Downvotes = prevUp, prevDown
		return VoteTally{}, err
	}
	return tally, nil
}

func containsUser(set []string, userID string) bool {
	for _, u := range set {
		if u == userID {
			return true
		}
	}
	return false
}

func removeUser(set []string, userID string) []string {
	out := set[:0]
	for _, u := range set {
		if u != userID {
			out = append(out, u)
		}
	}
	return out
}
