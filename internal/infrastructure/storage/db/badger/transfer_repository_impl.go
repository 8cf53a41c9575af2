package dbbadger

import (
	"context"
	"errors"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

type transferRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTransferRepositoryImpl returns a TransferRepository backed by the
// given badgerhold store.
func NewTransferRepositoryImpl(store *badgerhold.Store) domain.TransferRepository {
	return &transferRepositoryImpl{store}
}

func (r *transferRepositoryImpl) AddTransfer(
	_ context.Context, transfer *domain.Transfer,
) error {
	if transfer == nil {
		return ErrNullTransfer
	}
	if err := r.store.Insert(transfer.Id, *transfer); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return ErrTransferExists
		}
		return err
	}
	return nil
}

func (r *transferRepositoryImpl) GetTransfer(
	_ context.Context, id string,
) (*domain.Transfer, error) {
	var transfer domain.Transfer
	if err := r.store.Get(id, &transfer); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepositoryImpl) GetTransferByTxId(
	_ context.Context, txid string,
) (*domain.Transfer, error) {
	if len(txid) <= 0 {
		return nil, domain.ErrTransferNotFound
	}

	query := badgerhold.Where("TxId").Eq(txid)
	transfers, err := r.findTransfers(query)
	if err != nil {
		return nil, err
	}
	if len(transfers) <= 0 {
		return nil, domain.ErrTransferNotFound
	}
	return transfers[0], nil
}

func (r *transferRepositoryImpl) GetAllTransfers(
	_ context.Context,
) ([]*domain.Transfer, error) {
	query := badgerhold.Where("Id").Ne("").
		SortBy("CreatedAt", "Id").Reverse()
	return r.findTransfers(query)
}

func (r *transferRepositoryImpl) UpdateTransfer(
	_ context.Context, id string,
	updateFn func(t *domain.Transfer) (*domain.Transfer, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var transfer domain.Transfer
		if err := r.store.TxGet(tx, id, &transfer); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrTransferNotFound
			}
			return err
		}

		updatedTransfer, err := updateFn(&transfer)
		if err != nil {
			return err
		}
		if updatedTransfer == nil {
			return ErrNullTransfer
		}

		return r.store.TxUpdate(tx, id, *updatedTransfer)
	})
}

func (r *transferRepositoryImpl) findTransfers(
	query *badgerhold.Query,
) ([]*domain.Transfer, error) {
	var found []domain.Transfer
	if err := r.store.Find(&found, query); err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(found))
	for i := range found {
		transfers = append(transfers, &found[i])
	}
	return transfers, nil
}
