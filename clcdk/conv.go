package clcdk

import (
	"strings"
	"unicode"
)

type conventions struct {
	qualifier string
	region    string
}

// NewConventions inits a convention instance.
func NewConventions(qual, region string) Conventions {
	return conventions{qualifier: qual, region: region}
}

// StackName is the qualifier in camel case, cloudformation doesn't allow most punctuation.
func (c conventions) StackName() string {
	var sb strings.Builder

	upper := true
	for _, r := range c.qualifier {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true

			continue
		}

		if upper {
			r = unicode.ToUpper(r)
		}

		upper = false

		sb.WriteRune(r)
	}

	return sb.String() + "Topology"
}

// BootstrapQualifier is limited to 10 lower case alpha numeric characters by the cdk.
func (c conventions) BootstrapQualifier() string {
	const maxLen = 10

	q := strings.ToLower(c.StackName())
	if len(q) > maxLen {
		q = q[:maxLen]
	}

	return q
}

func (c conventions) Qualifier() string {
	return c.qualifier
}

func (c conventions) Region() string {
	return c.region
}

// Conventions describes the interface for retrieving info that needs to be consistent between the stack
// and the other programs, i.e: magefiles.
type Conventions interface {
	StackName() string
	BootstrapQualifier() string
	Qualifier() string
	Region() string
}
