package client

// ChatState groups the client-side stores of one chat view
type ChatState struct {
	Roster     *Roster
	Transcript *Transcript
	Presence   *Presence

	// Local UI state, never sent on the wire
	EmojiPickerOpen bool
	Draft           string
}

// NewChatState creates empty stores using avatar for profile derivation
func NewChatState(avatar AvatarFunc) *ChatState {
	return &ChatState{
		Roster:     NewRoster(avatar),
		Transcript: NewTranscript(),
		Presence:   NewPresence(),
	}
}

// Reset clears all state but keeps the avatar derivation
func (cs *ChatState) Reset() {
	cs.Roster.Replace(nil)
	cs.Transcript = NewTranscript()
	cs.Presence = NewPresence()
	cs.EmojiPickerOpen = false
	cs.Draft = ""
}
