package view

// IntentKind enumerates the watchlist mutations the view can request.
// Navigation and search are plain GET routes and never become intents.
type IntentKind string

const (
	IntentAdd         IntentKind = "add"
	IntentRemove      IntentKind = "remove"
	IntentToggle      IntentKind = "toggle-watched"
	IntentSaveDetails IntentKind = "save-details"
)

// Intent is a typed command produced from a raw user event, decoupling
// what was clicked from the mutation it causes.
type Intent struct {
	Kind   IntentKind
	Key    string
	Rating int
	Notes  string
}

// MapEvent translates a raw control name and its parameters into an
// Intent. Unknown controls map to a zero Intent, which callers ignore.
func MapEvent(control string, params map[string]string) Intent {
	switch control {
	case "add-button":
		return Intent{Kind: IntentAdd, Key: params["key"]}
	case "remove-button":
		return Intent{Kind: IntentRemove, Key: params["key"]}
	case "watched-toggle":
		return Intent{Kind: IntentToggle, Key: params["key"]}
	case "save-details":
		return Intent{Kind: IntentSaveDetails, Key: params["key"], Notes: params["notes"], Rating: atoiOrZero(params["rating"])}
	default:
		return Intent{}
	}
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
