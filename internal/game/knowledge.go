package game

// Knowledge is the best known verdict per letter and position, folded from every
// accepted guess. Updates only ever upgrade: new = Max(old, candidate).
//
// Lookup attributes Correct to a (letter, position) pair only when some guess had
// that letter Correct at that exact position. Otherwise it reports the strongest
// Present/Absent seen for the letter anywhere; a Correct at a different position
// counts as Present there.
type Knowledge struct {
	seen    [26]bool
	best    [26]Verdict // capped at Present
	correct [WordLength][26]bool
	anyBest [26]Verdict // uncapped, for the keyboard
}

// Observe folds one scored guess into the knowledge.
func (k *Knowledge) Observe(g Guess) {
	for pos, sl := range g {
		j, valid := letterIndex(sl.Letter)
		if !valid {
			continue
		}
		k.seen[j] = true
		k.anyBest[j] = Max(k.anyBest[j], sl.Verdict)
		if sl.Verdict == Correct {
			k.correct[pos][j] = true
		}
		k.best[j] = Max(k.best[j], Min(sl.Verdict, Present))
	}
}

// Lookup returns the best attributable verdict for letter typed at pos.
// ok is false when the letter has never been guessed.
func (k *Knowledge) Lookup(letter byte, pos int) (v Verdict, ok bool) {
	j, valid := letterIndex(letter)
	if !valid || !k.seen[j] {
		return Absent, false
	}
	if pos >= 0 && pos < WordLength && k.correct[pos][j] {
		return Correct, true
	}
	return k.best[j], true
}

// Letter returns the strongest verdict seen for letter at any position.
func (k *Knowledge) Letter(letter byte) (v Verdict, ok bool) {
	j, valid := letterIndex(letter)
	if !valid || !k.seen[j] {
		return Absent, false
	}
	return k.anyBest[j], true
}

// Accumulate recomputes Lookup from scratch over history.
func Accumulate(history []Guess, letter byte, pos int) (Verdict, bool) {
	var k Knowledge
	for _, g := range history {
		k.Observe(g)
	}
	return k.Lookup(letter, pos)
}

// Min returns the weaker of two verdicts.
func Min(a, b Verdict) Verdict {
	if b.Stronger(a) {
		return a
	}
	return b
}

func letterIndex(letter byte) (int, bool) {
	c := upper(rune(letter))
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return idx(c), true
}
