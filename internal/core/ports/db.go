package ports

import "github.com/blind-mentorship/mentorship-wallet/internal/core/domain"

// RepoManager gives access to the repositories of a storage backend.
type RepoManager interface {
	TransferRepository() domain.TransferRepository
	Close()
}
