package core

// ActionSet lists what a single tile may do this turn.
// Commands maps a commandable teammate's square to where it may be sent.
type ActionSet struct {
	Moves    []Position
	Strikes  []Position
	Commands map[Position][]Position
}

func NewActionSet() ActionSet {
	return ActionSet{
		Moves:    []Position{},
		Strikes:  []Position{},
		Commands: make(map[Position][]Position),
	}
}

// IsEmpty reports whether the tile can do nothing. A command key with no
// destinations does not count as something to do.
func (a ActionSet) IsEmpty() bool {
	if len(a.Moves) > 0 || len(a.Strikes) > 0 {
		return false
	}
	for _, dests := range a.Commands {
		if len(dests) > 0 {
			return false
		}
	}
	return true
}

// CommandKeys returns the commandable teammates in row-major order
func (a ActionSet) CommandKeys() []Position {
	keys := make([]Position, 0, len(a.Commands))
	for k := range a.Commands {
		keys = append(keys, k)
	}
	SortPositions(keys)
	return keys
}

// Attacks returns every square the tile threatens: moves, strikes and
// command destinations.
func (a ActionSet) Attacks() []Position {
	out := make([]Position, 0, len(a.Moves)+len(a.Strikes))
	out = append(out, a.Moves...)
	out = append(out, a.Strikes...)
	for _, dests := range a.Commands {
		out = append(out, dests...)
	}
	return out
}

// Normalize sorts every list and removes duplicates so results are deterministic
func (a *ActionSet) Normalize() {
	a.Moves = dedupe(a.Moves)
	a.Strikes = dedupe(a.Strikes)
	for k, v := range a.Commands {
		a.Commands[k] = dedupe(v)
	}
}

// ChoiceSet is everything a player may legally do on their turn.
// Act always has an entry for the Duke's square.
type ChoiceSet struct {
	Player int
	Pull   []Position
	Act    map[Position]ActionSet
}

func NewChoiceSet(playerID int) *ChoiceSet {
	return &ChoiceSet{
		Player: playerID,
		Pull:   []Position{},
		Act:    make(map[Position]ActionSet),
	}
}

// HasNoValidChoices reports whether the player cannot do anything at all
func (cs *ChoiceSet) HasNoValidChoices() bool {
	if len(cs.Pull) > 0 {
		return false
	}
	for _, a := range cs.Act {
		if !a.IsEmpty() {
			return false
		}
	}
	return true
}

// Sources returns the squares of the player's tiles in row-major order
func (cs *ChoiceSet) Sources() []Position {
	keys := make([]Position, 0, len(cs.Act))
	for k := range cs.Act {
		keys = append(keys, k)
	}
	SortPositions(keys)
	return keys
}

// Choices enumerates every offered choice in a stable order. Place choices
// carry no troop; it is drawn when the choice is applied.
func (cs *ChoiceSet) Choices() []Choice {
	var out []Choice
	for _, site := range cs.Pull {
		out = append(out, &PlaceChoice{PlayerID: cs.Player, Site: site})
	}
	for _, src := range cs.Sources() {
		a := cs.Act[src]
		for _, dst := range a.Moves {
			out = append(out, &MoveChoice{PlayerID: cs.Player, Source: src, Destination: dst})
		}
		for _, tgt := range a.Strikes {
			out = append(out, &StrikeChoice{PlayerID: cs.Player, Source: src, Target: tgt})
		}
		for _, mate := range a.CommandKeys() {
			for _, dst := range a.Commands[mate] {
				out = append(out, &CommandChoice{PlayerID: cs.Player, Commander: src, Teammate: mate, Destination: dst})
			}
		}
	}
	return out
}

// Count returns the number of distinct choices offered
func (cs *ChoiceSet) Count() int {
	n := len(cs.Pull)
	for _, a := range cs.Act {
		n += len(a.Moves) + len(a.Strikes)
		for _, dests := range a.Commands {
			n += len(dests)
		}
	}
	return n
}

func dedupe(ps []Position) []Position {
	if len(ps) == 0 {
		return []Position{}
	}
	seen := make(map[Position]struct{}, len(ps))
	out := make([]Position, 0, len(ps))
	for _, p := range ps {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	SortPositions(out)
	return out
}
