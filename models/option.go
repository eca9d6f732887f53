package models

import (
	"fmt"
	"strings"
)

type OptionType int

const (
	Call OptionType = iota
	Put
)

// ParseOptionType normalizes a user supplied option type. It accepts
// "call"/"c" and "put"/"p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOptionType, s)
	}
}

func (o OptionType) Valid() bool {
	return o == Call || o == Put
}

func (o OptionType) String() string {
	switch o {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(o))
	}
}

// MarshalText lets option types appear as "call"/"put" in JSON output.
func (o OptionType) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOptionType, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText accepts anything ParseOptionType does.
func (o *OptionType) UnmarshalText(b []byte) error {
	typ, err := ParseOptionType(string(b))
	if err != nil {
		return err
	}
	*o = typ
	return nil
}
