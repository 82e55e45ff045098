// Package ranges manages preflop range scenarios: the scenario catalog,
// default range strings, adherence/deviation math, and villain range
// estimation from observed stats.
package ranges

// Positions in action order for 6-max.
var Positions = []string{"EP", "HJ", "CO", "BTN", "SB", "BB"}

// Scenario is one preflop decision the player can define a range for.
type Scenario struct {
	Key      string `json:"scenario_key"`
	Label    string `json:"scenario_label"`
	Category string `json:"category"`
}

var Scenarios = []Scenario{
	{"open_EP", "EP Open", "Opens"},
	{"open_HJ", "HJ Open", "Opens"},
	{"open_CO", "CO Open", "Opens"},
	{"open_BTN", "BTN Open", "Opens"},
	{"open_SB", "SB Open", "Opens"},
	{"3bet_HJ_vs_EP", "HJ 3-Bet vs EP", "vs EP"},
	{"call_HJ_vs_EP", "HJ Call vs EP", "vs EP"},
	{"3bet_CO_vs_EP", "CO 3-Bet vs EP", "vs EP"},
	{"call_CO_vs_EP", "CO Call vs EP", "vs EP"},
	{"3bet_BTN_vs_EP", "BTN 3-Bet vs EP", "vs EP"},
	{"call_BTN_vs_EP", "BTN Call vs EP", "vs EP"},
	{"3bet_SB_vs_EP", "SB 3-Bet vs EP", "vs EP"},
	{"call_SB_vs_EP", "SB Call vs EP", "vs EP"},
	{"3bet_BB_vs_EP", "BB 3-Bet vs EP", "vs EP"},
	{"call_BB_vs_EP", "BB Call vs EP", "vs EP"},
	{"3bet_CO_vs_HJ", "CO 3-Bet vs HJ", "vs HJ"},
	{"call_CO_vs_HJ", "CO Call vs HJ", "vs HJ"},
	{"3bet_BTN_vs_HJ", "BTN 3-Bet vs HJ", "vs HJ"},
	{"call_BTN_vs_HJ", "BTN Call vs HJ", "vs HJ"},
	{"3bet_SB_vs_HJ", "SB 3-Bet vs HJ", "vs HJ"},
	{"call_SB_vs_HJ", "SB Call vs HJ", "vs HJ"},
	{"3bet_BB_vs_HJ", "BB 3-Bet vs HJ", "vs HJ"},
	{"call_BB_vs_HJ", "BB Call vs HJ", "vs HJ"},
	{"3bet_BTN_vs_CO", "BTN 3-Bet vs CO", "vs CO"},
	{"call_BTN_vs_CO", "BTN Call vs CO", "vs CO"},
	{"3bet_SB_vs_CO", "SB 3-Bet vs CO", "vs CO"},
	{"call_SB_vs_CO", "SB Call vs CO", "vs CO"},
	{"3bet_BB_vs_CO", "BB 3-Bet vs CO", "vs CO"},
	{"call_BB_vs_CO", "BB Call vs CO", "vs CO"},
	{"3bet_SB_vs_BTN", "SB 3-Bet vs BTN", "vs BTN"},
	{"call_SB_vs_BTN", "SB Call vs BTN", "vs BTN"},
	{"3bet_BB_vs_BTN", "BB 3-Bet vs BTN", "vs BTN"},
	{"call_BB_vs_BTN", "BB Call vs BTN", "vs BTN"},
	{"3bet_BB_vs_SB", "BB 3-Bet vs SB", "vs SB"},
	{"call_BB_vs_SB", "BB Call vs SB", "vs SB"},
}

// ScenarioByKey returns the catalog entry for a key, when it exists.
func ScenarioByKey(key string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.Key == key {
			return s, true
		}
	}
	return Scenario{}, false
}

// Default 6-max NL 100bb ranges, used until the player saves their own.
var Defaults = map[string]string{
	"open_EP": "AA,KK,QQ,JJ,TT,99,88," +
		"AKs,AQs,AJs,ATs,A9s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,QJs,JTs,T9s," +
		"AKo,AQo",
	"open_HJ": "AA,KK,QQ,JJ,TT,99,88,77," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s," +
		"AKo,AQo,AJo,KQo",
	"open_CO": "AA,KK,QQ,JJ,TT,99,88,77,66,55," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,T8s,98s,97s,87s,76s,65s," +
		"AKo,AQo,AJo,ATo,KQo,KJo",
	"open_BTN": "AA,KK,QQ,JJ,TT,99,88,77,66,55,44,33,22," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,K8s,K7s,K6s,K5s,K4s,K3s,K2s," +
		"QJs,QTs,Q9s,Q8s,Q7s,JTs,J9s,J8s,J7s," +
		"T9s,T8s,T7s,98s,97s,96s,87s,86s,76s,75s,65s,64s,54s,43s," +
		"AKo,AQo,AJo,ATo,A9o,KQo,KJo,KTo,QJo,QTo,JTo",
	"open_SB": "AA,KK,QQ,JJ,TT,99,88,77,66,55,44,33,22," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,K8s,K7s,QJs,QTs,Q9s,Q8s," +
		"JTs,J9s,J8s,T9s,T8s,98s,97s,87s,86s,76s,65s,54s," +
		"AKo,AQo,AJo,ATo,KQo,KJo,KTo,QJo",
	"3bet_HJ_vs_EP":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,A5s,A4s,AKo,AQo:0.5",
	"3bet_CO_vs_EP":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs:0.5,A5s,A4s,A3s,AKo,AQo:0.5",
	"3bet_BTN_vs_EP": "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs:0.5,A5s,A4s,A3s,A2s,KQs:0.5,AKo,AQo",
	"3bet_SB_vs_EP":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,A5s,A4s,A3s,A2s,AKo,AQo:0.5",
	"3bet_BB_vs_EP":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs:0.5,A5s,A4s,A3s,A2s,KQs:0.5,AKo,AQo,AJo:0.25",
	"3bet_CO_vs_HJ":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs:0.5,A5s,A4s,A3s,KQs:0.5,AKo,AQo",
	"3bet_BTN_vs_HJ": "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs,A5s,A4s,A3s,A2s,KQs:0.5,QJs:0.5,AKo,AQo,AJo:0.5",
	"3bet_SB_vs_HJ":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs:0.5,A5s,A4s,A3s,A2s,AKo,AQo:0.5",
	"3bet_BB_vs_HJ":  "AA,KK,QQ,JJ,TT,99:0.5,AKs,AQs,AJs,A5s,A4s,A3s,A2s,KQs:0.5,AKo,AQo,AJo:0.5",
	"3bet_BTN_vs_CO": "AA,KK,QQ,JJ,TT,99:0.5,AKs,AQs,AJs,A5s,A4s,A3s,A2s,KQs,QJs:0.5,AKo,AQo,AJo:0.5",
	"3bet_SB_vs_CO":  "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs:0.5,A5s,A4s,A3s,A2s,AKo,AQo",
	"3bet_BB_vs_CO":  "AA,KK,QQ,JJ,TT,99:0.5,AKs,AQs,AJs,A5s,A4s,A3s,A2s,KQs:0.5,AKo,AQo,AJo",
	"3bet_SB_vs_BTN": "AA,KK,QQ,JJ,TT,99:0.5,AKs,AQs,AJs,A5s,A4s,A3s,A2s,KQs:0.5,AKo,AQo,AJo:0.5",
	"3bet_BB_vs_BTN": "AA,KK,QQ,JJ,TT,99,88:0.5,AKs,AQs,AJs,ATs:0.5,A5s,A4s,A3s,A2s,KQs,QJs:0.5,AKo,AQo,AJo",
	"3bet_BB_vs_SB":  "AA,KK,QQ,JJ,TT,99,88:0.5,AKs,AQs,AJs,A5s,A4s,A3s,A2s,KQs:0.5,AKo,AQo,AJo:0.5",
	"call_HJ_vs_EP":  "QQ:0.5,JJ,TT,99,88,77,AQs:0.5,AJs,ATs,A9s,KQs,KJs,QJs,JTs,T9s,98s,AJo:0.5",
	"call_CO_vs_EP":  "QQ:0.5,JJ,TT,99,88,77,66,AQs:0.5,AJs,ATs,A9s,A8s,KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s,AJo:0.5,ATo:0.5,KQo:0.5",
	"call_BTN_vs_EP": "QQ:0.5,JJ,TT,99,88,77,66,55,AQs:0.5,AJs,ATs,A9s,A8s,A7s,A6s,KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,T8s,98s,97s,87s,76s,65s,AJo:0.5,ATo,KQo,KJo:0.5",
	"call_SB_vs_EP":  "QQ:0.5,JJ,TT,99,88,77,AQs:0.5,AJs,ATs,A9s,KQs,KJs,QJs,JTs,T9s,AJo:0.5",
	"call_BB_vs_EP":  "QQ:0.5,JJ,TT,99,88,77,66,55,44,AQs:0.5,AJs,ATs,A9s,A8s,A7s,A6s,A5s,KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,T8s,98s,97s,87s,76s,65s,54s,AJo,ATo:0.5,KQo,KJo:0.5",
	"call_CO_vs_HJ":  "QQ:0.5,JJ,TT,99,88,77,66,AJs,ATs,A9s,A8s,KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,T8s,98s,87s,76s,ATo:0.5,KQo:0.5",
	"call_BTN_vs_HJ": "QQ:0.5,JJ,TT,99,88,77,66,55,AJs,ATs,A9s,A8s,A7s,A6s,KQs,KJs,KTs,K9s,K8s,QJs,QTs,Q9s,JTs,J9s,T9s,T8s,98s,97s,87s,76s,65s,ATo,KQo,KJo:0.5",
	"call_SB_vs_HJ":  "QQ:0.5,JJ,TT,99,88,77,AJs,ATs,A9s,KQs,KJs,QJs,JTs,T9s,98s",
	"call_BB_vs_HJ":  "QQ:0.5,JJ,TT,99,88,77,66,55,44,33,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s,KQs,KJs,KTs,K9s,K8s,QJs,QTs,Q9s,J9s,JTs,T9s,T8s,98s,97s,87s,76s,65s,54s,ATo,KQo,KJo",
	"call_BTN_vs_CO": "JJ,TT,99,88,77,66,55,44,ATs,A9s,A8s,A7s,A6s,KQs,KJs,KTs,K9s,K8s,QJs,QTs,Q9s,Q8s,JTs,J9s,J8s,T9s,T8s,98s,97s,87s,86s,76s,75s,65s,AJo:0.5,ATo,KQo,KJo,QJo:0.5",
	"call_SB_vs_CO":  "JJ,TT,99,88,77,ATs,A9s,A8s,KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s",
	"call_BB_vs_CO":  "JJ,TT,99,88,77,66,55,44,33,22,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s,KQs,KJs,KTs,K9s,K8s,K7s,QJs,QTs,Q9s,Q8s,JTs,J9s,J8s,T9s,T8s,98s,97s,87s,76s,65s,54s,ATo,KQo,KJo,QJo",
	"call_SB_vs_BTN": "TT,99,88,77,66,A9s,A8s,A7s,A6s,KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,T8s,98s,97s,87s",
	"call_BB_vs_BTN": "99,88,77,66,55,44,33,22,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s,KQs,KJs,KTs,K9s,K8s,K7s,K6s,QJs,QTs,Q9s,Q8s,Q7s,JTs,J9s,J8s,J7s,T9s,T8s,T7s,98s,97s,96s,87s,86s,76s,75s,65s,64s,54s,43s,ATo,A9o,KQo,KJo,KTo,QJo,QTo,JTo",
	"call_BB_vs_SB":  "99,88,77,66,55,44,33,22,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s,KQs,KJs,KTs,K9s,K8s,K7s,QJs,QTs,Q9s,Q8s,JTs,J9s,J8s,T9s,T8s,98s,97s,87s,76s,65s,ATo,KQo,KJo,KTo:0.5,QJo,QTo:0.5",
}

// DefaultRange returns the catalog default for a key, empty when unknown.
func DefaultRange(key string) string { return Defaults[key] }
