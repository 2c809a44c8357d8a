package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gamebeacon/internal/storage"
)

var leaseKey = []byte("current")

// SaveLease stores the lease, replacing the previous one
func (s *Storage) SaveLease(ctx context.Context, lease *storage.Lease) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketLease)
		if bucket == nil {
			return fmt.Errorf("lease bucket not found")
		}

		// Сериализуем данные в JSON
		data, err := json.Marshal(lease)
		if err != nil {
			return fmt.Errorf("failed to marshal lease: %w", err)
		}

		if err := bucket.Put(leaseKey, data); err != nil {
			return fmt.Errorf("failed to save lease: %w", err)
		}

		return nil
	})
}

// GetLease retrieves the stored lease
func (s *Storage) GetLease(ctx context.Context) (*storage.Lease, error) {
	var lease *storage.Lease

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketLease)
		if bucket == nil {
			return fmt.Errorf("lease bucket not found")
		}

		data := bucket.Get(leaseKey)
		if data == nil {
			return storage.ErrLeaseNotFound
		}

		// Десериализуем
		lease = &storage.Lease{}
		if err := json.Unmarshal(data, lease); err != nil {
			return fmt.Errorf("failed to unmarshal lease: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return lease, nil
}

// DeleteLease removes the stored lease
func (s *Storage) DeleteLease(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketLease)
		if bucket == nil {
			return fmt.Errorf("lease bucket not found")
		}

		// Проверяем существование данных
		if bucket.Get(leaseKey) == nil {
			return storage.ErrLeaseNotFound
		}

		if err := bucket.Delete(leaseKey); err != nil {
			return fmt.Errorf("failed to delete lease: %w", err)
		}

		return nil
	})
}
