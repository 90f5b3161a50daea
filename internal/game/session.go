// apps/term/internal/game/session.go
//
// Game session state machine for a single secret word.
// Responsibilities:
//   - Own the pending input buffer and the append-only guess list.
//   - Validate submissions (length, word list) and score them via Evaluate.
//   - Track state transitions: in progress → won/lost.
//
// Invalid submissions are rejected transitions, reported as an Outcome and never
// as an error. A Session is driven by one goroutine at a time.

package game

// State is the coarse session state.
type State int

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "playing"
}

// Dictionary answers word-list membership for uppercase words.
type Dictionary interface {
	Contains(word string) bool
}

// EventKind enumerates the input events a session understands.
type EventKind int

const (
	TypeChar EventKind = iota
	Backspace
	Submit
	Quit
)

func (k EventKind) String() string {
	switch k {
	case TypeChar:
		return "type"
	case Backspace:
		return "backspace"
	case Submit:
		return "submit"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Event is one discrete input event. Char is only meaningful for TypeChar.
type Event struct {
	Kind EventKind
	Char rune
}

// Outcome reports what a transition did.
type Outcome int

const (
	Ignored       Outcome = iota // no-op (finished game, full buffer, non-letter...)
	Typed                        // a letter was appended to the pending input
	Erased                       // the last pending letter was removed
	Accepted                     // the pending word was scored and recorded
	TooShort                     // submit with fewer than WordLength letters
	NotInWordList                // submit of an unknown word
	Quitting                     // the input source asked to stop
)

func (o Outcome) String() string {
	switch o {
	case Typed:
		return "typed"
	case Erased:
		return "erased"
	case Accepted:
		return "accepted"
	case TooShort:
		return "not enough letters"
	case NotInWordList:
		return "not in word list"
	case Quitting:
		return "quit"
	}
	return "ignored"
}

// Session holds the state of one game.
type Session struct {
	secret    string
	dict      Dictionary
	guesses   []Guess
	pending   []byte
	state     State
	knowledge Knowledge
}

// NewSession starts a game for secret. The secret must be a 5-letter word; it is
// uppercased and need not be in dict.
func NewSession(secret string, dict Dictionary) *Session {
	return &Session{
		secret:  mustWord("secret", secret),
		dict:    dict,
		guesses: make([]Guess, 0, MaxGuesses),
		pending: make([]byte, 0, WordLength),
	}
}

// Apply dispatches an input event to the matching transition.
func (s *Session) Apply(ev Event) Outcome {
	switch ev.Kind {
	case TypeChar:
		return s.TypeCharacter(ev.Char)
	case Backspace:
		return s.Backspace()
	case Submit:
		return s.Submit()
	case Quit:
		return Quitting
	}
	return Ignored
}

// TypeCharacter appends c (uppercased) to the pending input when the game is in
// progress, the buffer has room and c is an ASCII letter.
func (s *Session) TypeCharacter(c rune) Outcome {
	if s.state != InProgress || len(s.pending) >= WordLength || !isLetter(c) {
		return Ignored
	}
	s.pending = append(s.pending, upper(c))
	return Typed
}

// Backspace removes the last pending letter.
func (s *Session) Backspace() Outcome {
	if s.state != InProgress || len(s.pending) == 0 {
		return Ignored
	}
	s.pending = s.pending[:len(s.pending)-1]
	return Erased
}

// Submit scores the pending word if it is complete and in the word list.
// Rejected submissions leave the session untouched.
func (s *Session) Submit() Outcome {
	if s.state != InProgress {
		return Ignored
	}
	if len(s.pending) != WordLength {
		return TooShort
	}
	word := string(s.pending)
	if s.dict == nil || !s.dict.Contains(word) {
		return NotInWordList
	}

	g := Evaluate(s.secret, word)
	s.guesses = append(s.guesses, g)
	s.knowledge.Observe(g)
	s.pending = s.pending[:0]

	if g.Solved() {
		s.state = Won
	} else if len(s.guesses) >= MaxGuesses {
		s.state = Lost
	}
	return Accepted
}

// Secret returns the uppercase secret word.
func (s *Session) Secret() string { return s.secret }

// State reports the current state.
func (s *Session) State() State { return s.state }

// Finished reports whether the game is won or lost.
func (s *Session) Finished() bool { return s.state != InProgress }

// Attempts is the number of accepted guesses.
func (s *Session) Attempts() int { return len(s.guesses) }

// Guesses returns a copy of the accepted guesses in submission order.
func (s *Session) Guesses() []Guess {
	out := make([]Guess, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// Words returns the accepted guesses as plain words.
func (s *Session) Words() []string {
	out := make([]string, len(s.guesses))
	for i, g := range s.guesses {
		out[i] = g.Word()
	}
	return out
}

// Pending returns the not yet submitted input.
func (s *Session) Pending() string { return string(s.pending) }

// Lookup returns the best known verdict for letter typed at pos.
func (s *Session) Lookup(letter byte, pos int) (Verdict, bool) {
	return s.knowledge.Lookup(letter, pos)
}

// PendingHints returns the known verdict for each pending letter; ok[i] is false
// when the letter at i has never been guessed.
func (s *Session) PendingHints() (v []Verdict, ok []bool) {
	v = make([]Verdict, len(s.pending))
	ok = make([]bool, len(s.pending))
	for i, c := range s.pending {
		v[i], ok[i] = s.knowledge.Lookup(c, i)
	}
	return v, ok
}

// LetterHint returns the strongest verdict seen for letter anywhere.
func (s *Session) LetterHint(letter byte) (Verdict, bool) {
	return s.knowledge.Letter(letter)
}

// Grid renders the emoji summary of the accepted guesses.
func (s *Session) Grid() string { return Grid(s.guesses) }

// Replay submits words in order, as if typed. It stops at the first word that is
// not exactly WordLength ASCII letters or is rejected, and returns how many were
// accepted.
func (s *Session) Replay(words []string) int {
	n := 0
	for _, w := range words {
		if s.Finished() {
			break
		}
		word, ok := NormalizeWord(w)
		if !ok {
			break
		}
		s.pending = s.pending[:0]
		for _, c := range word {
			s.TypeCharacter(c)
		}
		if s.Submit() != Accepted {
			s.pending = s.pending[:0]
			break
		}
		n++
	}
	return n
}
