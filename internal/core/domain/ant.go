package domain

import "fmt"

// Ant is the Access Network Type carried in the low nibble of the
// Interworking element options byte (IEEE 802.11u).
type Ant int

// Wire codes are fixed by the standard; never derive them from declaration
// order.
const (
	AntPrivate            Ant = 0
	AntPrivateWithGuest   Ant = 1
	AntChargeablePublic   Ant = 2
	AntFreePublic         Ant = 3
	AntPersonal           Ant = 4
	AntEmergencyOnly      Ant = 5
	AntResvd6             Ant = 6
	AntResvd7             Ant = 7
	AntResvd8             Ant = 8
	AntResvd9             Ant = 9
	AntResvd10            Ant = 10
	AntResvd11            Ant = 11
	AntResvd12            Ant = 12
	AntResvd13            Ant = 13
	AntTestOrExperimental Ant = 14
	AntWildcard           Ant = 15
)

var antNames = map[Ant]string{
	AntPrivate:            "Private",
	AntPrivateWithGuest:   "PrivateWithGuest",
	AntChargeablePublic:   "ChargeablePublic",
	AntFreePublic:         "FreePublic",
	AntPersonal:           "Personal",
	AntEmergencyOnly:      "EmergencyOnly",
	AntResvd6:             "Resvd6",
	AntResvd7:             "Resvd7",
	AntResvd8:             "Resvd8",
	AntResvd9:             "Resvd9",
	AntResvd10:            "Resvd10",
	AntResvd11:            "Resvd11",
	AntResvd12:            "Resvd12",
	AntResvd13:            "Resvd13",
	AntTestOrExperimental: "TestOrExperimental",
	AntWildcard:           "Wildcard",
}

// AntFromCode maps a wire code to its Ant value. All 16 nibble values are
// valid.
func AntFromCode(code int) (Ant, bool) {
	a := Ant(code)
	_, ok := antNames[a]
	return a, ok
}

func (a Ant) String() string {
	if name, ok := antNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Ant(%d)", int(a))
}
