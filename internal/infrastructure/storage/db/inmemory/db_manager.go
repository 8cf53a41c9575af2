package inmemory

import (
	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
)

type repoManager struct {
	transferRepository domain.TransferRepository
}

// NewRepoManager returns a RepoManager whose repositories live in memory.
func NewRepoManager() ports.RepoManager {
	return &repoManager{NewTransferRepositoryImpl()}
}

func (d *repoManager) TransferRepository() domain.TransferRepository {
	return d.transferRepository
}

func (d *repoManager) Close() {}
