package collision

// Tracker records the content digest of each zone added to an index and
// detects zones whose bytes repeat an earlier zone.
//
// Digests only nominate candidates; callers confirm with a byte comparison.
// Two zones with the same digest but different bytes are a hash collision,
// which is counted but otherwise harmless.
type Tracker struct {
	firstByDigest map[uint64]string // digest → first zone seen with it
	duplicateOf   map[string]string // zone → earlier zone with identical bytes
	collisions    int
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{
		firstByDigest: make(map[uint64]string),
		duplicateOf:   make(map[string]string),
	}
}

// Track records zone name with content digest.
//
// If an earlier zone has the same digest, same is called with its name and
// must report whether the two zones' bytes are identical. Track returns the
// earlier zone's name when they are.
//
// Tracking a name twice is the caller's bug; the second call is ignored.
func (t *Tracker) Track(name string, digest uint64, same func(earlier string) bool) (string, bool) {
	if _, dup := t.duplicateOf[name]; dup {
		return "", false
	}

	earlier, exists := t.firstByDigest[digest]
	if !exists {
		t.firstByDigest[digest] = name

		return "", false
	}

	if earlier == name {
		return "", false
	}

	if !same(earlier) {
		t.collisions++
		return "", false
	}

	t.duplicateOf[name] = earlier

	return earlier, true
}

// DuplicateOf returns the earlier zone whose bytes name repeats.
func (t *Tracker) DuplicateOf(name string) (string, bool) {
	earlier, ok := t.duplicateOf[name]
	return earlier, ok
}

// Duplicates returns a copy of the zone → earlier zone mapping.
func (t *Tracker) Duplicates() map[string]string {
	out := make(map[string]string, len(t.duplicateOf))
	for k, v := range t.duplicateOf {
		out[k] = v
	}

	return out
}

// Collisions returns the number of digest collisions seen.
func (t *Tracker) Collisions() int {
	return t.collisions
}
