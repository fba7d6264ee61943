package repo

import (
	"context"

	"givebox/internal/domain"
	"givebox/internal/infra"
	"givebox/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository on PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts one donation and fills in the server-assigned id and
// creation timestamp. Exactly one durable write per successful call.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation,
		donation.DonorName, donation.DonorEmail, donation.Amount, donation.Currency, donation.Message)
	return row.Scan(&donation.ID, &donation.CreatedAt)
}

// List returns every donation, newest first.
func (r *DonationRepositoryPG) List(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := rows.Scan(&donation.ID, &donation.DonorName, &donation.DonorEmail,
			&donation.Amount, &donation.Currency, &donation.Message, &donation.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
