// Package search parses the compact `key:value;key2:value2;` query syntax used
// by the list endpoints.
package search

type scanState int

const (
	stateNone scanState = iota
	stateKey
	stateValue
)

const (
	keyTerminator  = ':'
	pairTerminator = ';'
)

// Tokens scans search left to right and returns the pairs whose key is listed
// in supported. Unsupported keys and malformed fragments are dropped. Values
// are returned raw; no escaping exists, so keys never contain ':' and values
// never contain ';'. When a key repeats, the last value wins.
func Tokens(search string, supported []string) map[string]string {
	allowed := make(map[string]struct{}, len(supported))
	for _, key := range supported {
		allowed[key] = struct{}{}
	}

	tokens := map[string]string{}
	runes := []rune(search)
	last := len(runes) - 1

	var key, value []rune
	state := stateNone

	flush := func() {
		if _, ok := allowed[string(key)]; ok {
			tokens[string(key)] = string(value)
		}
		key = key[:0]
		value = value[:0]
		state = stateNone
	}

	for i, c := range runes {
		switch state {
		case stateNone:
			if c == ' ' {
				continue
			}
			key = append(key, c)
			state = stateKey
		case stateKey:
			if c == keyTerminator {
				state = stateValue
				continue
			}
			key = append(key, c)
		case stateValue:
			if c != pairTerminator {
				value = append(value, c)
			}
			if c == pairTerminator || i == last {
				flush()
			}
		}
	}

	return tokens
}
