package phoneme

import (
	"strings"
)

type Group string

const (
	Sibilants  Group = "sibilants"
	Vowels     Group = "vowels"
	Consonants Group = "consonants"
	Liquids    Group = "liquids"
	Nasals     Group = "nasals"
	Stops      Group = "stops"
	Fricatives Group = "fricatives"
	Silence    Group = "silence"
	Special    Group = "special"
	Unknown    Group = "unknown"
)

// Groups lists the declarable groups in scan order.
var Groups = []Group{Sibilants, Vowels, Consonants, Liquids, Nasals, Stops, Fricatives, Silence, Special}

func (g Group) Valid() bool {
	for _, k := range Groups {
		if g == k {
			return true
		}
	}
	return false
}

type Entry struct {
	Group   Group
	Members []string
}

// Table is an ordered group membership list. A token may belong to several
// groups; the first declared match wins. Tables are read-only once built.
type Table struct {
	entries []Entry
	sets    []map[string]struct{}
	silence map[string]struct{} // lowercased silence members
}

func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		sets:    make([]map[string]struct{}, 0, len(entries)),
		silence: map[string]struct{}{},
	}
	for _, e := range entries {
		members := append([]string(nil), e.Members...)
		set := make(map[string]struct{}, len(members))
		for _, m := range members {
			set[m] = struct{}{}
			if e.Group == Silence {
				t.silence[strings.ToLower(m)] = struct{}{}
			}
		}
		t.entries = append(t.entries, Entry{Group: e.Group, Members: members})
		t.sets = append(t.sets, set)
	}
	return t
}

// Entries returns a copy of the table rows in scan order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Group: e.Group, Members: append([]string(nil), e.Members...)}
	}
	return out
}

// Classify lowercases the token, checks silence first, then returns the
// first group whose members contain it. Members are matched as declared,
// so upper-case members (e.g. "N") are reachable only through the silence check.
func (t *Table) Classify(token string) Group {
	low := strings.ToLower(token)
	if _, ok := t.silence[low]; ok {
		return Silence
	}
	for i, set := range t.sets {
		if _, ok := set[low]; ok {
			return t.entries[i].Group
		}
	}
	return Unknown
}

var defaultTable = NewTable([]Entry{
	{Sibilants, []string{"s", "z", "sh", "zh", "ts", "dz", "ch", "dj", "x"}},
	{Vowels, []string{"a", "e", "i", "o", "u", "N"}},
	{Consonants, []string{"b", "c", "d", "f", "g", "h", "j", "k", "l", "m", "n", "p", "q", "r", "t", "v", "w"}},
	{Liquids, []string{"l", "r"}},
	{Nasals, []string{"m", "n", "ng"}},
	{Stops, []string{"p", "b", "t", "d", "k", "g"}},
	{Fricatives, []string{"f", "v", "th", "dh", "s", "z", "sh", "zh", "h"}},
	{Silence, []string{"pau", "sil", "SP"}},
	{Special, []string{"cl", "vf"}},
})

// Default is the built-in HTK/Japanese-oriented table.
func Default() *Table { return defaultTable }

func Classify(token string) Group { return defaultTable.Classify(token) }
