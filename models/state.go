package models

// GuildConfig holds the per-guild channel assignments. A zero value means
// the channel role has not been configured yet.
type GuildConfig struct {
	ConfessionChannelID string `json:"confession_channel_id,omitempty"`
	SuggestionChannelID string `json:"suggestion_channel_id,omitempty"`
	LogChannelID        string `json:"log_channel_id,omitempty"`
}

// State is the full durable snapshot of the ledger. It is serialized as a
// single JSON document and replaced atomically on every persist.
//
// MessageToConfession and MessageToSuggestion are derived caches: they can
// always be rebuilt from the message IDs stored on the records themselves.
type State struct {
	ConfessionCount     int64                   `json:"confession_count"`
	Confessions         map[int64]*Confession   `json:"confessions"`
	MessageToConfession map[string]int64        `json:"message_to_confession"`
	SuggestionCount     int64                   `json:"suggestion_count"`
	Suggestions         map[int64]*Suggestion   `json:"suggestions"`
	MessageToSuggestion map[string]int64        `json:"message_to_suggestion"`
	GuildConfigs        map[string]*GuildConfig `json:"guild_configs"`
}

// NewState returns an empty state with all tables allocated.
func NewState() *State {
	return &State{
		Confessions:         make(map[int64]*Confession),
		MessageToConfession: make(map[string]int64),
		Suggestions:         make(map[int64]*Suggestion),
		MessageToSuggestion: make(map[string]int64),
		GuildConfigs:        make(map[string]*GuildConfig),
	}
}

// Normalize repairs a freshly decoded snapshot: allocates any missing
// table, raises a counter that lags its highest record ID, fills nil
// slices, and removes double vote-set membership (the upvote wins). A
// hand-edited snapshot then satisfies the same shape the engine maintains.
func (s *State) Normalize() {
	if s.Confessions == nil {
		s.Confessions = make(map[int64]*Confession)
	}
	if s.MessageToConfession == nil {
		s.MessageToConfession = make(map[string]int64)
	}
	if s.Suggestions == nil {
		s.Suggestions = make(map[int64]*Suggestion)
	}
	if s.MessageToSuggestion == nil {
		s.MessageToSuggestion = make(map[string]int64)
	}
	if s.GuildConfigs == nil {
		s.GuildConfigs = make(map[string]*GuildConfig)
	}

	for id, rec := range s.Confessions {
		if id > s.ConfessionCount {
			s.ConfessionCount = id
		}
		if rec.Replies == nil {
			rec.Replies = []Reply{}
		}
	}
	for id, rec := range s.Suggestions {
		if id > s.SuggestionCount {
			s.SuggestionCount = id
		}
		if rec.Upvotes == nil {
			rec.Upvotes = []string{}
		}
		if rec.Downvotes == nil {
			rec.Downvotes = []string{}
		}
		rec.Downvotes = subtractUsers(rec.Downvotes, rec.Upvotes)
	}
}

// subtractUsers returns set without any user that also appears in other.
func subtractUsers(set, other []string) []string {
	out := set[:0]
	for _, u := range set {
		dup := false
		for _, v := range other {
			if u == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, u)
		}
	}
	return out
}
