//go:build ci

package sound

const (
	CueMessage = "message"
	CueJoin    = "join"
)

// Player is a silent stand-in used on CI machines without audio.
type Player struct{}

func NewPlayer(string, bool) *Player { return &Player{} }

func (p *Player) Init() error     { return nil }
func (p *Player) Has(string) bool { return false }
func (p *Player) Play(string)     {}
func (p *Player) Close()          {}
