package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAvatarFunc(t *testing.T) {
	t.Parallel()

	avatar := NewAvatarFunc("https://img.example.com/%s.svg")
	assert.Equal(t, "https://img.example.com/alice.svg", avatar("alice"))
	assert.Equal(t, "https://img.example.com/a%20b.svg", avatar("a b"))
	assert.Equal(t, avatar("alice"), avatar("alice"), "derivation must be stable")

	assert.Equal(t, "https://avatars.dicebear.com/api/adventurer-neutral/bob.svg", DefaultAvatar("bob"))
}

func TestRoster_ReplaceIsWholesale(t *testing.T) {
	t.Parallel()

	r := NewRoster(nil)
	assert.Equal(t, 0, r.Len())

	r.Replace([]string{"alice", "bob", "carol"})
	require.Equal(t, 3, r.Len())
	assert.Equal(t, []UserProfile{
		{Name: "alice", Avatar: DefaultAvatar("alice")},
		{Name: "bob", Avatar: DefaultAvatar("bob")},
		{Name: "carol", Avatar: DefaultAvatar("carol")},
	}, r.Users())

	// 新列表完全替换旧列表，不做合并
	r.Replace([]string{"dave", "alice"})
	assert.Equal(t, []UserProfile{
		{Name: "dave", Avatar: DefaultAvatar("dave")},
		{Name: "alice", Avatar: DefaultAvatar("alice")},
	}, r.Users())

	r.Replace(nil)
	assert.Empty(t, r.Users())
}

func TestRoster_UsersReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRoster(nil)
	r.Replace([]string{"alice"})

	users := r.Users()
	users[0].Name = "mallory"

	assert.Equal(t, "alice", r.Users()[0].Name)
}

func TestRoster_ProfileForFallback(t *testing.T) {
	t.Parallel()

	avatar := NewAvatarFunc("a/%s")
	r := NewRoster(avatar)
	r.Replace([]string{"alice"})

	got, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "a/alice", got.Avatar)

	_, ok = r.Lookup("ghost")
	assert.False(t, ok)

	assert.Equal(t, UserProfile{Name: "ghost", Avatar: "a/ghost"}, r.ProfileFor("ghost"))
	assert.Equal(t, 1, r.Len(), "fallback profile must not be inserted")
}
