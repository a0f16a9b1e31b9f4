package models

import "strings"

// FriendEdge stores the friend list of one user. The owning Username is
// case-sensitive; membership tests on the friend names are case-insensitive
// while the stored casing is preserved.
type FriendEdge struct {
	Username string   `json:"username"`
	Friends  []string `json:"friends"`
}

// HasFriend reports whether name is in the friend list, ignoring case.
func (e FriendEdge) HasFriend(name string) bool {
	for _, f := range e.Friends {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// WithoutFriend returns the friend list with every case-insensitive match of
// name removed.
func (e FriendEdge) WithoutFriend(name string) []string {
	kept := make([]string, 0, len(e.Friends))
	for _, f := range e.Friends {
		if !strings.EqualFold(f, name) {
			kept = append(kept, f)
		}
	}
	return kept
}
