package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty"
)

// KVTotalsRepo stores driver totals in a JetStream key-value bucket keyed by the base64url
// form of the driver ID. Writes are compare-and-set on the entry revision.
type KVTotalsRepo struct {
	kv jetstream.KeyValue
}

func NewKVTotalsRepo(kv jetstream.KeyValue) penalty.TotalsRepo {
	return &KVTotalsRepo{kv: kv}
}

func (r *KVTotalsRepo) Get(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, error) {
	total, _, err := r.get(ctx, driverID)
	return total, err
}

func (r *KVTotalsRepo) get(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, uint64, error) {
	entry, err := r.kv.Get(ctx, totalKey(driverID))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, 0, models.ErrTotalNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get driver total: %w", storeError(err))
	}

	var total models.DriverPenaltyTotal
	if err := json.Unmarshal(entry.Value(), &total); err != nil {
		return nil, 0, fmt.Errorf("%w: failed to unmarshal driver total %s: %w", models.ErrTotalUnusable, driverID, err)
	}
	return &total, entry.Revision(), nil
}

func (r *KVTotalsRepo) Save(ctx context.Context, total models.DriverPenaltyTotal) error {
	data, err := json.Marshal(total)
	if err != nil {
		return fmt.Errorf("failed to marshal driver total: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, revision, err := r.get(ctx, total.DriverID)
		switch {
		case errors.Is(err, models.ErrTotalNotFound):
			_, err = r.kv.Create(ctx, totalKey(total.DriverID), data)
		case err != nil:
			return err
		case current.LastEventSeq >= total.LastEventSeq:
			return nil
		default:
			_, err = r.kv.Update(ctx, totalKey(total.DriverID), data, revision)
		}

		if err == nil {
			return nil
		}
		// lost a race with another writer, re-read and compare again
		if isRevisionConflict(err) {
			continue
		}
		return fmt.Errorf("failed to store driver total: %w", storeError(err))
	}
}

// totalKey maps any driver ID onto the bucket's key alphabet
func totalKey(driverID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(driverID))
}

func storeError(err error) error {
	if errors.Is(err, jetstream.ErrInvalidKey) {
		return fmt.Errorf("%w: %w", models.ErrTotalUnusable, err)
	}
	return err
}

func isRevisionConflict(err error) bool {
	if errors.Is(err, jetstream.ErrKeyExists) {
		return true
	}
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}
