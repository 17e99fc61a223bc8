package branch

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Kind tags the tier a branch belongs to. All tiers share one Branch type.
type Kind int

const (
	UnknownKind Kind = iota
	MainBranch
	RegionalHub
	LocalOffice
)

var kindNames = map[Kind]string{
	MainBranch:  "main_branch",
	RegionalHub: "regional_hub",
	LocalOffice: "local_office",
}

// AllKinds returns the three tiers from the top down.
func AllKinds() []Kind {
	return []Kind{MainBranch, RegionalHub, LocalOffice}
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("branch kind is invalid", fmt.Errorf("%q is not a branch kind", name))
}

func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("branch kind is invalid", fmt.Errorf("%d is not a valid branch kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// IsTopTier reports whether branches of this kind take part in the system rollup.
func (k Kind) IsTopTier() bool {
	return k == MainBranch
}
