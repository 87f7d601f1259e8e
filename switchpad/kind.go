package switchpad

import (
	"fmt"
	"strings"
)

// Kind is the controller type a slot emulates on the console. The numeric
// value is the wire code.
type Kind uint16

const (
	KindNone                Kind = 0
	KindProController       Kind = 1
	KindJoyConLeftSideways  Kind = 2
	KindJoyConRightSideways Kind = 3
)

var kindNames = map[Kind]string{
	KindNone:                "none",
	KindProController:       "pro",
	KindJoyConLeftSideways:  "joycon-l-side",
	KindJoyConRightSideways: "joycon-r-side",
}

// KindNames lists the accepted textual kinds, in wire code order.
var KindNames = []string{"none", "pro", "joycon-l-side", "joycon-r-side"}

// ParseKind accepts the names returned by Kind.String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown controller kind %q (expected one of %s)", s, strings.Join(KindNames, ", "))
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint16(k))
}

// Code is the 16-bit value written to the wire.
func (k Kind) Code() uint16 { return uint16(k) }

// Valid reports whether k names a controller that can be bound to a slot.
func (k Kind) Valid() bool {
	return k >= KindProController && k <= KindJoyConRightSideways
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown controller kind %d", uint16(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
