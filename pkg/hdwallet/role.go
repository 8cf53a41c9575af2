package hdwallet

import "fmt"

// Role selects the branch of an account used to derive keys for a specific
// purpose.
type Role uint32

const (
	// RoleNightExternal derives unshielded spending keys.
	RoleNightExternal Role = iota
	// RoleNightInternal derives unshielded change keys.
	RoleNightInternal
	// RoleDust derives the key of the fee-paying dust wallet.
	RoleDust
	// RoleZswap derives the seed of shielded secret keys.
	RoleZswap
	RoleMetadata
)

var roleToString = map[Role]string{
	RoleNightExternal: "NightExternal",
	RoleNightInternal: "NightInternal",
	RoleDust:          "Dust",
	RoleZswap:         "Zswap",
	RoleMetadata:      "Metadata",
}

func (r Role) String() string {
	if s, ok := roleToString[r]; ok {
		return s
	}
	return fmt.Sprintf("Role(%d)", uint32(r))
}

func (r Role) validate() error {
	if _, ok := roleToString[r]; !ok {
		return fmt.Errorf("%w: unknown role %d", ErrDerivation, uint32(r))
	}
	return nil
}

// Keys maps every derived role to its raw private key.
type Keys map[Role][]byte

// Wipe zeroes every key of the map.
func (k Keys) Wipe() {
	for _, key := range k {
		Wipe(key)
	}
}

// Wipe zeroes the given buffer.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
