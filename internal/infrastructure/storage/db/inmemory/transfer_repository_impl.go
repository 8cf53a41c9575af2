package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
)

type transferRepositoryImpl struct {
	transfers map[string]domain.Transfer
	locker    *sync.RWMutex
}

// NewTransferRepositoryImpl returns a new inmemory TransferRepository
// implementation.
func NewTransferRepositoryImpl() domain.TransferRepository {
	return &transferRepositoryImpl{
		transfers: make(map[string]domain.Transfer),
		locker:    &sync.RWMutex{},
	}
}

func (r *transferRepositoryImpl) AddTransfer(
	_ context.Context, transfer *domain.Transfer,
) error {
	if transfer == nil {
		return ErrNullTransfer
	}

	r.locker.Lock()
	defer r.locker.Unlock()

	if _, ok := r.transfers[transfer.Id]; ok {
		return ErrTransferExists
	}
	r.transfers[transfer.Id] = copyTransfer(*transfer)
	return nil
}

func (r *transferRepositoryImpl) GetTransfer(
	_ context.Context, id string,
) (*domain.Transfer, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.getTransfer(id)
}

func (r *transferRepositoryImpl) GetTransferByTxId(
	_ context.Context, txid string,
) (*domain.Transfer, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	for _, t := range r.transfers {
		if len(txid) > 0 && t.TxId == txid {
			transfer := copyTransfer(t)
			return &transfer, nil
		}
	}
	return nil, domain.ErrTransferNotFound
}

func (r *transferRepositoryImpl) GetAllTransfers(
	_ context.Context,
) ([]*domain.Transfer, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	transfers := make([]*domain.Transfer, 0, len(r.transfers))
	for _, t := range r.transfers {
		transfer := copyTransfer(t)
		transfers = append(transfers, &transfer)
	}
	sortTransfers(transfers)
	return transfers, nil
}

func (r *transferRepositoryImpl) UpdateTransfer(
	_ context.Context, id string,
	updateFn func(t *domain.Transfer) (*domain.Transfer, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	transfer, err := r.getTransfer(id)
	if err != nil {
		return err
	}

	updatedTransfer, err := updateFn(transfer)
	if err != nil {
		return err
	}
	if updatedTransfer == nil {
		return ErrNullTransfer
	}

	r.transfers[id] = copyTransfer(*updatedTransfer)
	return nil
}

func (r *transferRepositoryImpl) getTransfer(id string) (*domain.Transfer, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	transfer := copyTransfer(t)
	return &transfer, nil
}

func copyTransfer(t domain.Transfer) domain.Transfer {
	if t.Outputs != nil {
		t.Outputs = append([]domain.TransferOutput{}, t.Outputs...)
	}
	if t.PrimarySegments != nil {
		t.PrimarySegments = append([]uint16{}, t.PrimarySegments...)
	}
	if t.BalancingSegments != nil {
		t.BalancingSegments = append([]uint16{}, t.BalancingSegments...)
	}
	return t
}

// sortTransfers orders transfers from the most recent one.
func sortTransfers(transfers []*domain.Transfer) {
	sort.SliceStable(transfers, func(i, j int) bool {
		if transfers[i].CreatedAt == transfers[j].CreatedAt {
			return transfers[i].Id > transfers[j].Id
		}
		return transfers[i].CreatedAt > transfers[j].CreatedAt
	})
}
