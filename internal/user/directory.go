package user

import (
	"context"
	"fmt"

	"expenseshare/internal/expense"
)

// Directory adapts the user repository to the identity-resolution
// interface the expense engine depends on.
type Directory struct {
	repo *Repository
}

// NewDirectory creates a directory over the given repository
func NewDirectory(repo *Repository) *Directory {
	return &Directory{repo: repo}
}

// ResolveByID resolves a single user by ID
func (d *Directory) ResolveByID(ctx context.Context, id int64) (*expense.ParticipantRef, error) {
	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", expense.ErrUnknownParticipant, id)
	}
	return &expense.ParticipantRef{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// ResolveByEmails resolves the given emails to participant references.
// Emails that do not resolve are simply absent from the result; the
// allocation validator reports them.
func (d *Directory) ResolveByEmails(ctx context.Context, emails []string) (map[string]expense.ParticipantRef, error) {
	if len(emails) == 0 {
		return map[string]expense.ParticipantRef{}, nil
	}

	users, err := d.repo.GetByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]expense.ParticipantRef, len(users))
	for _, u := range users {
		resolved[u.Email] = expense.ParticipantRef{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return resolved, nil
}
