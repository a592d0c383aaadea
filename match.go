/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/Seednode/guesswho/guesswho"
)

type Mode string

const (
	// The computer asks questions about the player's character.
	ModeAIGuesses Mode = "ai_guesses"
	// The player asks questions about the computer's secret character.
	ModePlayerGuesses Mode = "player_guesses"
	// Both sides take turns asking.
	ModeTwoSided Mode = "twosided"
)

func (m Mode) valid() bool {
	switch m {
	case ModeAIGuesses, ModePlayerGuesses, ModeTwoSided:
		return true
	}
	return false
}

func (m Mode) hasSecret() bool {
	return m == ModePlayerGuesses || m == ModeTwoSided
}

type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhasePlayerAsks Phase = "player_asks"
	PhaseAIAsks     Phase = "ai_asks"
	PhaseOver       Phase = "over"
)

const (
	sidePlayer = "player"
	sideAI     = "ai"
)

// Turn is one answered question, kept for the history shown to clients.
type Turn struct {
	Asker     string            `json:"asker"`
	Question  guesswho.Question `json:"question"`
	Text      string            `json:"text"`
	Answer    bool              `json:"answer"`
	Remaining int               `json:"remaining"`
}

// Match is the state of one game between a player and the computer. It
// owns two narrowing engines: the computer's view of the player's character
// and the player's view of the computer's secret.
//
// Match is not safe for concurrent use; the owning Hub serialises access.
type Match struct {
	roster   *guesswho.Roster
	strategy guesswho.Strategy
	pick     func(n int) (int, error)

	mode    Mode
	phase   Phase
	player  *guesswho.Character
	secret  *guesswho.Character
	ai      *guesswho.Engine
	board   *guesswho.Engine
	pending *guesswho.Question
	history []Turn
	winner  string
	message string
}

func newMatch(roster *guesswho.Roster, strategy guesswho.Strategy) *Match {
	return &Match{
		roster:   roster,
		strategy: strategy,
		pick:     cryptoPick,
		phase:    PhaseSetup,
		ai:       guesswho.NewEngine(roster),
		board:    guesswho.NewEngine(roster),
		message:  "Pick a game mode and your character to begin.",
	}
}

func cryptoPick(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// start begins a game in mode, with the player holding the named character.
func (m *Match) start(mode Mode, name string) error {
	if m.phase != PhaseSetup && m.phase != PhaseOver {
		return ErrAlreadyStarted
	}
	if !mode.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	player, ok := m.roster.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	var secret *guesswho.Character
	if mode.hasSecret() {
		all := m.roster.Characters()
		i, err := m.pick(len(all))
		if err != nil {
			return fmt.Errorf("failed to choose a secret character: %w", err)
		}
		secret = all[i]
	}

	m.clear()
	m.mode = mode
	m.player = player
	m.secret = secret

	switch mode {
	case ModeAIGuesses:
		m.aiTurn()
		if m.phase == PhaseAIAsks {
			m.message = fmt.Sprintf("You picked %s. The computer asks: %s", player.Name(), m.message)
		}
	case ModePlayerGuesses:
		m.phase = PhasePlayerAsks
		m.message = "The computer has picked a secret character. Ask away!"
	case ModeTwoSided:
		m.phase = PhasePlayerAsks
		m.message = fmt.Sprintf("You picked %s. Ask the first question.", player.Name())
	}

	return nil
}

// answer applies the player's answer to the computer's pending question.
func (m *Match) answer(yes bool) error {
	if err := m.playing(); err != nil {
		return err
	}
	if m.phase != PhaseAIAsks || m.pending == nil {
		return ErrNoPendingAsk
	}

	q := *m.pending
	m.pending = nil
	m.ai.ApplyAnswer(q, yes)
	m.record(sideAI, q, yes, m.ai.Len())

	if m.mode == ModeTwoSided && !m.ai.IsTerminal() {
		m.phase = PhasePlayerAsks
		m.message = "Your turn to ask."
		return nil
	}

	m.aiTurn()

	return nil
}

// ask answers the player's question truthfully about the computer's secret.
func (m *Match) ask(q guesswho.Question) (bool, error) {
	if err := m.playing(); err != nil {
		return false, err
	}
	if !m.mode.hasSecret() || m.phase != PhasePlayerAsks {
		return false, ErrNotYourTurn
	}
	if !q.Trait.Valid() {
		return false, ErrUnknownTrait
	}
	if !q.Value.IsDefined() {
		return false, ErrMissingValue
	}

	yes := q.Matches(m.secret)
	m.board.ApplyAnswer(q, yes)
	m.record(sidePlayer, q, yes, m.board.Len())

	reply := "No"
	if yes {
		reply = "Yes"
	}
	said := fmt.Sprintf("Computer says: %s to %q.", reply, questionText(q))
	m.message = said

	if m.mode == ModeTwoSided {
		m.aiTurn()
		if m.phase == PhaseAIAsks {
			m.message = said + " Now it asks: " + questionText(*m.pending)
		} else {
			m.message = said + " " + m.message
		}
	}

	return yes, nil
}

// guess is the player's final guess at the computer's secret.
func (m *Match) guess(name string) (bool, error) {
	if err := m.playing(); err != nil {
		return false, err
	}
	if !m.mode.hasSecret() || m.phase != PhasePlayerAsks {
		return false, ErrNotYourTurn
	}
	c, ok := m.roster.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	m.phase = PhaseOver
	m.pending = nil

	if c == m.secret {
		m.winner = sidePlayer
		m.message = fmt.Sprintf("You guessed %s. Correct, you win!", c.Name())
		return true, nil
	}

	m.winner = sideAI
	m.message = fmt.Sprintf("You guessed %s. Incorrect, the computer's character was %s.", c.Name(), m.secret.Name())

	return false, nil
}

// reset returns to mode selection.
func (m *Match) reset() {
	m.clear()
	m.message = "Pick a game mode and your character to begin."
}

func (m *Match) clear() {
	m.mode = ""
	m.phase = PhaseSetup
	m.player = nil
	m.secret = nil
	m.pending = nil
	m.history = nil
	m.winner = ""
	m.ai.Reset()
	m.board.Reset()
}

func (m *Match) playing() error {
	switch m.phase {
	case PhaseSetup:
		return ErrNotStarted
	case PhaseOver:
		return ErrGameOver
	}
	return nil
}

// aiTurn lets the computer ask its next question, or finish if it cannot.
func (m *Match) aiTurn() {
	if q, ok := m.ai.Recommend(m.strategy); ok {
		m.pending = &q
		m.phase = PhaseAIAsks
		m.message = questionText(q)
		return
	}

	guess, ok := m.ai.Guess()
	switch {
	case ok && guess == m.player:
		m.phase = PhaseOver
		m.winner = sideAI
		m.message = fmt.Sprintf("The computer guessed your character: %s!", guess.Name())
	case ok:
		m.phase = PhaseOver
		m.winner = sidePlayer
		m.message = fmt.Sprintf("The computer guessed %s, which is wrong.", guess.Name())
	case m.ai.Outcome() == guesswho.NoMatch:
		m.phase = PhaseOver
		m.winner = sidePlayer
		m.message = "The computer doesn't know who that is: no character matches your answers."
	case m.mode == ModeTwoSided:
		m.phase = PhasePlayerAsks
		m.message = "The computer is still unsure and passes. Your turn to ask."
	default:
		m.phase = PhaseOver
		m.message = "The computer is still unsure who your character is."
	}
}

func (m *Match) record(asker string, q guesswho.Question, yes bool, remaining int) {
	m.history = append(m.history, Turn{
		Asker:     asker,
		Question:  q,
		Text:      questionText(q),
		Answer:    yes,
		Remaining: remaining,
	})
}

// MatchState is the snapshot broadcast to every client of a game.
type MatchState struct {
	Type            string             `json:"type"` // "state"
	Mode            Mode               `json:"mode,omitempty"`
	Phase           Phase              `json:"phase"`
	Player          string             `json:"player,omitempty"`
	Question        *guesswho.Question `json:"question,omitempty"`
	QuestionText    string             `json:"question_text,omitempty"`
	AICandidates    []string           `json:"ai_candidates"`
	AIOutcome       guesswho.Outcome   `json:"ai_outcome"`
	BoardCandidates []string           `json:"board_candidates"`
	History         []Turn             `json:"history"`
	Winner          string             `json:"winner,omitempty"`
	Secret          string             `json:"secret,omitempty"`
	Message         string             `json:"message"`
}

func (m *Match) state() MatchState {
	s := MatchState{
		Type:            "state",
		Mode:            m.mode,
		Phase:           m.phase,
		AICandidates:    characterNames(m.ai.Candidates()),
		AIOutcome:       m.ai.Outcome(),
		BoardCandidates: characterNames(m.board.Candidates()),
		History:         append([]Turn{}, m.history...),
		Winner:          m.winner,
		Message:         m.message,
	}
	if m.player != nil {
		s.Player = m.player.Name()
	}
	if m.pending != nil {
		q := *m.pending
		s.Question = &q
		s.QuestionText = questionText(q)
	}
	if m.phase == PhaseOver && m.secret != nil {
		s.Secret = m.secret.Name()
	}
	return s
}

func characterNames(cs []*guesswho.Character) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

var (
	// Boolean traits phrased as things a character has.
	traitObjects = map[guesswho.Trait]string{
		guesswho.Beard:         "a beard",
		guesswho.Moustache:     "a moustache",
		guesswho.Glasses:       "glasses",
		guesswho.Hat:           "a hat",
		guesswho.ThickEyebrows: "thick eyebrows",
	}
	// String traits phrased as "<value> <noun>".
	traitNouns = map[guesswho.Trait]string{
		guesswho.Eyes: "eyes",
		guesswho.Hair: "hair",
	}
)

// questionText renders q as a yes/no question about "your character".
func questionText(q guesswho.Question) string {
	if b, ok := q.Value.IsBool(); ok {
		object, known := traitObjects[q.Trait]
		if !known {
			object = strings.ReplaceAll(q.Trait.String(), "_", " ")
		}
		if b {
			return fmt.Sprintf("Does your character have %s?", object)
		}
		return fmt.Sprintf("Does your character not have %s?", object)
	}

	switch {
	case q.Trait == guesswho.Gender:
		return fmt.Sprintf("Is your character %s?", q.Value)
	case q.Trait == guesswho.Hair && q.Value.String() == "bald":
		return "Is your character bald?"
	case q.Trait == guesswho.Nose:
		return fmt.Sprintf("Does your character have a %s nose?", q.Value)
	}

	if noun, ok := traitNouns[q.Trait]; ok {
		return fmt.Sprintf("Does your character have %s %s?", q.Value, noun)
	}
	return fmt.Sprintf("Is your character's %s %s?", strings.ReplaceAll(q.Trait.String(), "_", " "), q.Value)
}
