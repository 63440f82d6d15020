package client

import "fmt"

// Presence tracks who is typing. Insertion order is kept for display.
type Presence struct {
	users []string
}

// NewPresence creates an empty tracker.
func NewPresence() *Presence {
	return &Presence{}
}

// Add marks name as typing. It reports whether the set changed.
func (p *Presence) Add(name string) bool {
	if p.Contains(name) {
		return false
	}
	p.users = append(p.users, name)
	return true
}

// Remove clears name. It reports whether the set changed.
func (p *Presence) Remove(name string) bool {
	for i, u := range p.users {
		if u == name {
			p.users = append(p.users[:i:i], p.users[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether name is typing.
func (p *Presence) Contains(name string) bool {
	for _, u := range p.users {
		if u == name {
			return true
		}
	}
	return false
}

// Users returns the typing users in insertion order.
func (p *Presence) Users() []string {
	out := make([]string, len(p.users))
	copy(out, p.users)
	return out
}

// IndicatorText returns the typing indicator for the current set.
func (p *Presence) IndicatorText() string {
	return IndicatorText(p.users)
}

// IndicatorText collapses a list of typing users into one line. Three or more
// typers are never listed by name.
func IndicatorText(users []string) string {
	switch len(users) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s is typing...", users[0])
	case 2:
		return fmt.Sprintf("%s and %s are typing...", users[0], users[1])
	default:
		return "Several people are typing..."
	}
}
