package client

import (
	"net/url"
	"strings"

	"github.com/palemoky/yewchat/internal/config"
)

// AvatarFunc derives a stable avatar reference from a username.
type AvatarFunc func(name string) string

// NewAvatarFunc returns an AvatarFunc that substitutes the path-escaped name
// for every %s in template.
func NewAvatarFunc(template string) AvatarFunc {
	return func(name string) string {
		return strings.ReplaceAll(template, "%s", url.PathEscape(name))
	}
}

// DefaultAvatar uses config.DefaultAvatarTemplate.
var DefaultAvatar = NewAvatarFunc(config.DefaultAvatarTemplate)

// UserProfile is a roster entry.
type UserProfile struct {
	Name   string
	Avatar string
}

// Roster holds the users of the latest users envelope, in the order given.
type Roster struct {
	users  []UserProfile
	avatar AvatarFunc
}

// NewRoster creates an empty roster. A nil avatar falls back to DefaultAvatar.
func NewRoster(avatar AvatarFunc) *Roster {
	if avatar == nil {
		avatar = DefaultAvatar
	}
	return &Roster{avatar: avatar}
}

// Replace discards the current roster and rebuilds it from names.
func (r *Roster) Replace(names []string) {
	users := make([]UserProfile, 0, len(names))
	for _, name := range names {
		users = append(users, UserProfile{Name: name, Avatar: r.avatar(name)})
	}
	r.users = users
}

// Users returns a copy of the roster.
func (r *Roster) Users() []UserProfile {
	out := make([]UserProfile, len(r.users))
	copy(out, r.users)
	return out
}

// Len returns the number of users.
func (r *Roster) Len() int {
	return len(r.users)
}

// Lookup returns the profile for name if it is in the roster.
func (r *Roster) Lookup(name string) (UserProfile, bool) {
	for _, u := range r.users {
		if u.Name == name {
			return u, true
		}
	}
	return UserProfile{}, false
}

// ProfileFor returns the roster profile for name, or a derived profile when
// name is not in the roster. The derived profile is never stored.
func (r *Roster) ProfileFor(name string) UserProfile {
	if u, ok := r.Lookup(name); ok {
		return u
	}
	return UserProfile{Name: name, Avatar: r.avatar(name)}
}
