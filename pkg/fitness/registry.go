package fitness

import (
	"fmt"
	"sort"
	"strings"
)

// Params carries the tunables some fitness functions accept
type Params struct {
	KickerBonus float64 `json:"kicker_bonus,omitempty"`
	TrapSize    int     `json:"trap_size,omitempty"`
}

var constructors = map[string]func(Params) Function{
	"alternating": func(Params) Function { return AlternatingBits{} },
	"kicker": func(p Params) Function {
		bonus := p.KickerBonus
		if bonus == 0 {
			bonus = DefaultKickerBonus
		}
		return SumWithKicker{Bonus: bonus}
	},
	"onemax": func(Params) Function { return OneMax{} },
	"trap": func(p Params) Function {
		size := p.TrapSize
		if size <= 0 {
			size = 4
		}
		return DeceptiveTrap{K: size}
	},
	"zero": func(Params) Function { return Constant{} },
}

// Lookup returns the fitness function registered under name
func Lookup(name string, params Params) (Function, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown fitness function %q, expected one of [%s]", name, strings.Join(Names(), ", "))
	}
	return ctor(params), nil
}

// Names lists the registered fitness functions in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
