package game

// Emblem is the icon drawn on a character's tile.
type Emblem int

const (
	EmblemCircle Emblem = iota
	EmblemStar
	EmblemCrown
	EmblemBolt
	EmblemTrident
	EmblemShield
	EmblemPaw
)

func (e Emblem) String() string {
	switch e {
	case EmblemStar:
		return "star"
	case EmblemCrown:
		return "crown"
	case EmblemBolt:
		return "bolt"
	case EmblemTrident:
		return "trident"
	case EmblemShield:
		return "shield"
	case EmblemPaw:
		return "paw"
	default:
		return "circle"
	}
}

type Character struct {
	ID     string
	Color  Color
	Emblem Emblem
}

var roster = []Character{
	{ID: "Mal", Color: MustColor("#7731A0"), Emblem: EmblemStar},
	{ID: "Evie", Color: MustColor("#4169E1"), Emblem: EmblemCrown},
	{ID: "Jay", Color: MustColor("#FFD700"), Emblem: EmblemBolt},
	{ID: "Uma", Color: MustColor("#00008B"), Emblem: EmblemTrident},
	{ID: "Gil", Color: MustColor("#FFA500"), Emblem: EmblemShield},
	{ID: "Carlos", Color: MustColor("#FFFFFF"), Emblem: EmblemPaw},
}

// Roster returns a copy of the selectable characters in tile order.
func Roster() []Character {
	out := make([]Character, len(roster))
	copy(out, roster)
	return out
}

// RosterSize is the number of selectable characters.
func RosterSize() int { return len(roster) }

// Selection holds the characters picked so far. Slots fill in order.
type Selection struct {
	Player1 *Character
	Player2 *Character
}

func (s Selection) Complete() bool { return s.Player1 != nil && s.Player2 != nil }

// next reports which slot the following pick fills.
func (s Selection) next() Side {
	if s.Player1 == nil {
		return SideLeft
	}
	return SideRight
}
