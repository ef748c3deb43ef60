package ledger

import (
	"fmt"
	"sync"

	"confession-bot/models"
)

// EntityKind names one of the two record tables.
type EntityKind string

const (
	KindConfession EntityKind = "confession"
	KindSuggestion EntityKind = "suggestion"
)

// ChannelRole names a configurable guild channel assignment.
type ChannelRole string

const (
	RoleConfession ChannelRole = "confession"
	RoleSuggestion ChannelRole = "suggestion"
	RoleLog        ChannelRole = "log"
)

// Engine owns the ledger state and serializes every mutation behind a
// single lock. Each operation is read-modify-persist: the snapshot on disk
// never lags the last successful call. The pending image table keeps its
// own lock because it is short-lived and never persisted.
type Engine struct {
	mu      sync.Mutex
	state   *models.State
	store   *Store
	pending *PendingTable
}

// NewEngine loads the snapshot from store and returns a ready engine.
func NewEngine(store *Store) (*Engine, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Engine{
		state:   state,
		store:   store,
		pending: NewPendingTable(),
	}, nil
}

// persistLocked writes the snapshot. Callers must hold e.mu.
func (e *Engine) persistLocked() error {
	if err := e.store.Persist(e.state); err != nil {
		return fmt.Errorf("persist failed: %w", err)
	}
	return nil
}

// Pending exposes the correlation table, mainly for the scheduled reap job.
func (e *Engine) Pending() *PendingTable {
	return e.pending
}

// GuildConfig returns the configuration for a guild. An unconfigured guild
// yields a zero config, never an error.
func (e *Engine) GuildConfig(guildID string) models.GuildConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cfg, ok := e.state.GuildConfigs[guildID]; ok {
		return *cfg
	}
	return models.GuildConfig{}
}

// SetGuildChannel assigns a channel to one of the guild's channel roles.
func (e *Engine) SetGuildChannel(guildID string, role ChannelRole, channelID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, ok := e.state.GuildConfigs[guildID]
	if !ok {
		cfg = &models.GuildConfig{}
		e.state.GuildConfigs[guildID] = cfg
	}
	prev := *cfg
	switch role {
	case RoleConfession:
		cfg.ConfessionChannelID = channelID
	case RoleSuggestion:
		cfg.SuggestionChannelID = channelID
	case RoleLog:
		cfg.LogChannelID = channelID
	default:
		return fmt.Errorf("unknown channel role %q", role)
	}

	if err := e.persistLocked(); err != nil {
		if ok {
			*cfg = prev
		} else {
			delete(e.state.GuildConfigs, guildID)
		}
		return err
	}
	return nil
}

// ConfessionChannel returns the guild's confession channel, or
// ErrNotConfigured when none has been set.
func (e *Engine) ConfessionChannel(guildID string) (string, error) {
	if ch := e.GuildConfig(guildID).ConfessionChannelID; ch != "" {
		return ch, nil
	}
	return "", ErrNotConfigured
}

// SuggestionChannel returns the guild's suggestion channel, or
// ErrNotConfigured when none has been set.
func (e *Engine) SuggestionChannel(guildID string) (string, error) {
	if ch := e.GuildConfig(guildID).SuggestionChannelID; ch != "" {
		return ch, nil
	}
	return "", ErrNotConfigured
}

// ResolveConfession looks up the confession posted as messageID.
func (e *Engine) ResolveConfession(messageID string) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.state.MessageToConfession[messageID]
	return id, ok
}

// ResolveSuggestion looks up the suggestion posted as messageID.
func (e *Engine) ResolveSuggestion(messageID string) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.state.MessageToSuggestion[messageID]
	return id, ok
}

// RebuildIndex drops and repopulates the message index for one entity kind
// by scanning the records themselves. It exists for operator recovery after
// manual snapshot edits; normal operation keeps the index in step with the
// tables. Returns the number of entries rebuilt.
func (e *Engine) RebuildIndex(kind EntityKind) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rebuilt := 0
	switch kind {
	case KindConfession:
		e.state.MessageToConfession = make(map[string]int64)
		for id, rec := range e.state.Confessions {
			if rec.MessageID != "" {
				e.state.MessageToConfession[rec.MessageID] = id
				rebuilt++
			}
		}
	case KindSuggestion:
		e.state.MessageToSuggestion = make(map[string]int64)
		for id, rec := range e.state.Suggestions {
			if rec.MessageID != "" {
				e.state.MessageToSuggestion[rec.MessageID] = id
				rebuilt++
			}
		}
	default:
		return 0, fmt.Errorf("unknown entity kind %q", kind)
	}

	if err := e.persistLocked(); err != nil {
		return rebuilt, err
	}
	return rebuilt, nil
}
