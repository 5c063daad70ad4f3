package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/input/key"
)

const waitWord = "wait"

// ParseCondition parses the left-hand side of a combo into the events it
// requires. A bare key contributes its press and its release.
func ParseCondition(s string) ([]key.Event, error) {
	tokens, err := splitExpression(s)
	if err != nil {
		return nil, err
	}

	events := make([]key.Event, 0, len(tokens)*2)
	for _, tok := range tokens {
		words := strings.Fields(tok)
		if strings.EqualFold(words[0], waitWord) {
			return nil, fmt.Errorf("%w: %q", ErrWaitInCondition, tok)
		}

		switch len(words) {
		case 1:
			code, err := lookupKey(words[0])
			if err != nil {
				return nil, err
			}
			events = append(events, key.NewPress(code), key.NewRelease(code))
		case 2:
			code, action, err := parseTransition(words[0], words[1])
			if err != nil {
				return nil, err
			}
			events = append(events, key.Event{Code: code, Action: action})
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidToken, tok)
		}
	}
	return events, nil
}

// ParseAction parses the right-hand side of a combo into a macro.
func ParseAction(s string) ([]combo.ActionExpr, error) {
	tokens, err := splitExpression(s)
	if err != nil {
		return nil, err
	}

	actions := make([]combo.ActionExpr, 0, len(tokens))
	for _, tok := range tokens {
		words := strings.Fields(tok)

		if strings.EqualFold(words[0], waitWord) {
			if len(words) != 2 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidWait, tok)
			}
			ms, err := strconv.ParseUint(words[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidWait, tok)
			}
			actions = append(actions, combo.Wait(ms))
			continue
		}

		switch len(words) {
		case 1:
			code, err := lookupKey(words[0])
			if err != nil {
				return nil, err
			}
			actions = append(actions, combo.Tap(code))
		case 2:
			code, action, err := parseTransition(words[0], words[1])
			if err != nil {
				return nil, err
			}
			actions = append(actions, combo.Transition(code, action))
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidToken, tok)
		}
	}
	return actions, nil
}

// splitExpression splits s on "+" and trims each token. Every token is
// guaranteed to hold at least one word.
func splitExpression(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyExpression
	}

	parts := strings.Split(s, "+")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty token in %q", ErrInvalidToken, s)
		}
		tokens = append(tokens, p)
	}
	return tokens, nil
}

func lookupKey(name string) (key.Code, error) {
	code := key.CodeFromName(name)
	if code == key.CodeNone {
		return key.CodeNone, fmt.Errorf("%w %q", ErrUnknownKey, name)
	}
	return code, nil
}

// parseTransition accepts "down leftctrl" as well as "leftctrl down". When
// both readings are possible ("down up") the action comes first.
func parseTransition(first, second string) (key.Code, key.Action, error) {
	if action, ok := key.ActionFromName(first); ok {
		if code := key.CodeFromName(second); code != key.CodeNone {
			return code, action, nil
		}
	}
	if action, ok := key.ActionFromName(second); ok {
		code, err := lookupKey(first)
		if err != nil {
			return key.CodeNone, 0, err
		}
		return code, action, nil
	}
	if _, ok := key.ActionFromName(first); ok {
		return key.CodeNone, 0, fmt.Errorf("%w %q", ErrUnknownKey, second)
	}
	return key.CodeNone, 0, fmt.Errorf("%w in %q", ErrUnknownAction, first+" "+second)
}
