package domain

import "context"

// DonationRepository handles donation persistence. List returns every record
// newest first; pagination is deliberately absent at this scale.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	List(ctx context.Context) ([]Donation, error)
}

// UserRepository defines read access to provisioned accounts.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}
