package proposal

import "context"

type Filter struct {
	Status   Status
	ClientID string
	VendorID string
}

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	Save(ctx context.Context, p *Proposal) error
	GetByProposalID(ctx context.Context, proposalID string) (*Proposal, error)
	// GetByProposalIDForUpdate locks the row for the surrounding transaction.
	GetByProposalIDForUpdate(ctx context.Context, proposalID string) (*Proposal, error)
	List(ctx context.Context, f Filter) ([]Proposal, error)
}
