package runtime

import "github.com/aretw0/tapestry/pkg/domain"

// DeriveFlags computes the reveal flags of a node. It never restarts;
// the terminal node is handled by the transition itself.
func DeriveFlags(node domain.Node) domain.Flags {
	switch node.Type {
	case domain.NodeTypeTitle:
		return domain.Flags{ShowTap: true}
	case domain.NodeTypeChoice:
		return domain.Flags{ShowChoices: true, ChoiceReady: true}
	default:
		return domain.Flags{ShowTap: true}
	}
}
