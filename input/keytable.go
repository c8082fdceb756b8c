package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward as bare config values
var runeAliases = map[string]rune{
	"space": ' ',
}

// KeyTable maps terminal keys to intents
type KeyTable struct {
	SpecialKeys map[tcell.Key]Intent
	Runes       map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyCtrlQ: IntentQuit,
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlR: IntentRestart,
			tcell.KeyCtrlS: IntentToggleMute,
			tcell.KeyEsc:   IntentCancelDrag,
			tcell.KeyF1:    IntentHelp,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			'r': IntentRestart,
			'p': IntentPause,
			' ': IntentPause,
			'm': IntentToggleMute,
			'?': IntentHelp,
		},
	}
}

// Resolve maps a key event to an intent
func (kt *KeyTable) Resolve(ev *tcell.EventKey) Intent {
	if ev == nil {
		return IntentNone
	}
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}

// Apply overlays rune bindings from config, key is the rune or alias and value the intent name
// The whole set is validated before anything is bound
func (kt *KeyTable) Apply(bindings map[string]string) error {
	parsed := make(map[rune]Intent, len(bindings))
	for key, name := range bindings {
		r, err := parseRune(key)
		if err != nil {
			return err
		}
		intent, ok := ParseIntent(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return fmt.Errorf("key %q: unknown intent %q", key, name)
		}
		parsed[r] = intent
	}
	for r, intent := range parsed {
		kt.Runes[r] = intent
	}
	return nil
}

func parseRune(key string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(key)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(key) != 1 {
		return 0, fmt.Errorf("key %q: expected a single character", key)
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r, nil
}
