// ABOUTME: In-memory version store for token trees
// ABOUTME: Snapshot creation with auto-bump, tagging, retention pruning

package history

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nainya/tokenvault/internal/logger"
	"github.com/nainya/tokenvault/internal/metrics"
	"github.com/nainya/tokenvault/pkg/diff"
	"github.com/nainya/tokenvault/pkg/semver"
	"github.com/nainya/tokenvault/pkg/token"
)

// ErrVersionNotFound indicates a lookup for a version the store does not hold.
var ErrVersionNotFound = errors.New("history: version not found")

// DefaultInitialVersion is assigned to the first snapshot of a fresh store.
const DefaultInitialVersion = "1.0.0"

// Config holds version store configuration
type Config struct {
	// InitialVersion is used for the first created version.
	// Defaults to DefaultInitialVersion.
	InitialVersion string
	// MaxVersions bounds retention. Zero means unbounded. When exceeded after
	// an insert, only the N newest snapshots (by semver order) survive.
	MaxVersions int
	Logger      *logger.Logger
	Metrics     *metrics.Metrics
}

// Store holds named immutable snapshots of a token tree keyed by version
// string, with a current-version pointer owned by the instance. Reads are safe
// for concurrent use; CreateVersion is a read-modify-write sequence and
// callers needing concurrent writers must serialize them externally.
type Store struct {
	mu        sync.RWMutex
	cfg       Config
	current   string
	snapshots map[string]*snapshot

	log     *logger.Logger
	metrics *metrics.Metrics
}

type snapshot struct {
	record *Version
	tokens token.Tree
}

// NewStore creates a version store
func NewStore(cfg Config) *Store {
	if cfg.InitialVersion == "" {
		cfg.InitialVersion = DefaultInitialVersion
	}
	log := cfg.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Store{
		cfg:       cfg,
		snapshots: make(map[string]*snapshot),
		log:       log,
		metrics:   cfg.Metrics,
	}
}

// CreateVersion records a deep-cloned snapshot of tree as the next version.
// Changes are taken from info.Changes when supplied, otherwise diffed against
// the current head; their classification selects the bump (breaking > add >
// patch), with info.Breaking forcing major. Validation happens before any
// mutation, so a returned error leaves the store unchanged. Returns the new
// version string.
func (s *Store) CreateVersion(tree token.Tree, info CreateInfo) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := info.Changes
	if changes == nil {
		var prev token.Tree
		if cur, ok := s.snapshots[s.current]; ok {
			prev = cur.tokens
		}
		changes = diff.Diff(prev, tree)
	}

	bump := diff.BumpFor(changes)
	if info.Breaking {
		bump = semver.BumpMajor
	}

	var next semver.Version
	if s.current == "" {
		v, err := semver.Parse(s.cfg.InitialVersion)
		if err != nil {
			return "", fmt.Errorf("initial version: %w", err)
		}
		next = v
	} else {
		cur, err := semver.Parse(s.current)
		if err != nil {
			return "", fmt.Errorf("current version: %w", err)
		}
		next = cur.Increment(bump)
	}

	record := &Version{
		Version:     next.String(),
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   info.CreatedBy,
		Description: info.Description,
		Breaking:    info.Breaking || diff.HasBreakingChanges(changes),
		Tags:        append([]string(nil), info.Tags...),
		Parent:      s.current,
		Changes:     changes,
	}

	s.snapshots[record.Version] = &snapshot{
		record: record,
		tokens: token.Clone(tree),
	}
	s.current = record.Version
	s.prune()

	s.log.LogVersionCreated(record.Version, record.Parent, string(bump), len(changes), record.Breaking)
	s.metrics.RecordVersionCreated(string(bump), record.Breaking, len(changes))
	s.metrics.SetStoredVersions(len(s.snapshots))

	return record.Version, nil
}

// GetVersion returns the snapshot stored under v, or nil when absent.
// The tree is cloned on write, not on read: callers must treat it as
// read-only.
func (s *Store) GetVersion(v string) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[v]
	if !ok {
		return nil
	}
	return &Snapshot{Version: snap.record, Tokens: snap.tokens}
}

// CurrentVersion returns the current version string, empty for a fresh store.
func (s *Store) CurrentVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// GetCurrentTokens returns the token tree at the current version, or nil when
// no version exists.
func (s *Store) GetCurrentTokens() token.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[s.current]
	if !ok {
		return nil
	}
	return snap.tokens
}

// ListVersions returns all stored version records, newest first by semver
// order.
func (s *Store) ListVersions() []*Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

func (s *Store) listLocked() []*Version {
	records := make([]*Version, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		records = append(records, snap.record)
	}
	sort.Slice(records, func(i, j int) bool {
		// Keys were rendered by semver.Version.String, so they always parse.
		vi := semver.MustParse(records[i].Version)
		vj := semver.MustParse(records[j].Version)
		return vi.Compare(vj) > 0
	})
	return records
}

// SwitchToVersion moves the current pointer to v and returns that snapshot's
// tree.
func (s *Store) SwitchToVersion(v string) (token.Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, v)
	}
	s.current = v
	s.metrics.RecordSwitch()
	s.log.HistoryLogger("switch").Debug("Switched current version").Str("version", v).Send()
	return snap.tokens, nil
}

// TagVersion appends tags to an existing version record.
func (s *Store) TagVersion(v string, tags ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[v]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVersionNotFound, v)
	}
	snap.record.Tags = append(snap.record.Tags, tags...)
	return nil
}

// VersionsByTag returns all version records carrying tag, newest first.
func (s *Store) VersionsByTag(tag string) []*Version {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*Version
	for _, record := range s.listLocked() {
		for _, t := range record.Tags {
			if t == tag {
				matches = append(matches, record)
				break
			}
		}
	}
	return matches
}

// prune discards the oldest snapshots once MaxVersions is exceeded. The
// current version is always among the newest, so it survives. Parent pointers
// may dangle afterwards; lookups tolerate that.
func (s *Store) prune() {
	if s.cfg.MaxVersions <= 0 || len(s.snapshots) <= s.cfg.MaxVersions {
		return
	}

	records := s.listLocked()
	var removed []string
	for _, record := range records[s.cfg.MaxVersions:] {
		delete(s.snapshots, record.Version)
		removed = append(removed, record.Version)
	}

	s.metrics.RecordPruned(len(removed))
	s.log.LogPrune(removed, len(s.snapshots))
}
