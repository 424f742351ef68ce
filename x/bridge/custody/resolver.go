package custody

import (
	"github.com/atomiclabs/bridge/x/bridge/types"
)

// IdentityResolver resolves an opaque recipient identifier to a custodian
// identity by using its hex form directly. Custodian identities are opaque
// strings, so the 32-byte identifier is itself payable; deployments with a
// native address scheme substitute their own resolver.
type IdentityResolver struct{}

var _ types.RecipientResolver = IdentityResolver{}

func (IdentityResolver) Resolve(recipient types.RecipientID) (string, error) {
	return recipient.String(), nil
}
