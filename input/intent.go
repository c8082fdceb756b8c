package input

// Intent is a semantic key action
type Intent uint8

const (
	IntentNone Intent = iota
	IntentQuit
	IntentRestart
	IntentPause
	IntentToggleMute
	IntentCancelDrag
	IntentHelp
	intentCount
)

// intentNames maps config-facing names to intents
var intentNames = map[string]Intent{
	"quit":        IntentQuit,
	"restart":     IntentRestart,
	"pause":       IntentPause,
	"toggle_mute": IntentToggleMute,
	"cancel_drag": IntentCancelDrag,
	"help":        IntentHelp,
}

func (i Intent) String() string {
	for name, v := range intentNames {
		if v == i {
			return name
		}
	}
	return "none"
}

// ParseIntent resolves a config-facing intent name
func ParseIntent(name string) (Intent, bool) {
	i, ok := intentNames[name]
	return i, ok
}
