package delta

import "fmt"

// Addition is a key present only in the patched snapshot.
type Addition struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Update is a key present in both snapshots with different values.
type Update struct {
	Key  string `json:"key" yaml:"key"`
	From any    `json:"from" yaml:"from"`
	To   any    `json:"to" yaml:"to"`
}

// Delta is the difference between two snapshots.
// Use NewDelta or Generate so that empty parts encode as empty lists rather than null.
type Delta struct {
	Additions []Addition `json:"additions" yaml:"additions"`
	Deletions []string   `json:"deletions" yaml:"deletions"`
	Updates   []Update   `json:"updates" yaml:"updates"`
}

// NewDelta returns an empty delta.
func NewDelta() *Delta {
	return &Delta{
		Additions: []Addition{},
		Deletions: []string{},
		Updates:   []Update{},
	}
}

// IsEmpty reports whether the delta changes nothing.
func (d *Delta) IsEmpty() bool {
	return d == nil || len(d.Additions) == 0 && len(d.Deletions) == 0 && len(d.Updates) == 0
}

// Summary renders the part sizes, e.g. "+1 -2 ~0".
func (d *Delta) Summary() string {
	if d == nil {
		return "+0 -0 ~0"
	}

	return fmt.Sprintf("+%d -%d ~%d", len(d.Additions), len(d.Deletions), len(d.Updates))
}

// Generate computes the delta that turns base into patched.
//
// Additions follow patched's key order; deletions and updates follow base's.
// Keys whose values are structurally equal appear in no list.
func Generate(base, patched *Snapshot) *Delta {
	d := NewDelta()

	for _, e := range patched.Entries() {
		if !base.Has(e.Key) {
			d.Additions = append(d.Additions, Addition{Key: e.Key, Value: e.Value})
		}
	}

	for _, e := range base.Entries() {
		to, ok := patched.Get(e.Key)
		if !ok {
			d.Deletions = append(d.Deletions, e.Key)
			continue
		}

		if !ValuesEqual(e.Value, to) {
			d.Updates = append(d.Updates, Update{Key: e.Key, From: e.Value, To: to})
		}
	}

	return d
}

// Apply replays d on a copy of base and returns the copy; base is not modified.
//
// Deletions run first, then updates, then additions. Deleting an absent key
// and updating an absent key are no-ops. An addition overwrites an existing
// key in place and appends a new one.
func Apply(base *Snapshot, d *Delta) *Snapshot {
	out := base.Clone()
	if d == nil {
		return out
	}

	for _, key := range d.Deletions {
		out.Delete(key)
	}

	for _, u := range d.Updates {
		if out.Has(u.Key) {
			out.Set(u.Key, u.To)
		}
	}

	for _, a := range d.Additions {
		out.Set(a.Key, a.Value)
	}

	return out
}

// normalize replaces nil lists with empty ones and brings values decoded from
// YAML or MessagePack into the JSON value model.
func (d *Delta) normalize() {
	if d.Additions == nil {
		d.Additions = []Addition{}
	}

	if d.Deletions == nil {
		d.Deletions = []string{}
	}

	if d.Updates == nil {
		d.Updates = []Update{}
	}

	for i := range d.Additions {
		d.Additions[i].Value = normalizeValue(d.Additions[i].Value)
	}

	for i := range d.Updates {
		d.Updates[i].From = normalizeValue(d.Updates[i].From)
		d.Updates[i].To = normalizeValue(d.Updates[i].To)
	}
}
