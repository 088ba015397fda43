package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reservationTTL = time.Minute

// EmailReservation provides short-lived registration reservations backed by
// Redis. Key format: reserve:email:<email>
type EmailReservation struct {
	client *redis.Client
}

// NewEmailReservation creates an EmailReservation wrapping the given client.
func NewEmailReservation(client *redis.Client) *EmailReservation {
	return &EmailReservation{client: client}
}

// Reserve claims email for the duration of a registration attempt. Returns
// false when another in-flight registration already holds the reservation.
// The key expires after reservationTTL so an abandoned attempt never blocks
// the address permanently.
func (r *EmailReservation) Reserve(ctx context.Context, email string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(email), "1", reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reserve email: %w", err)
	}
	return ok, nil
}

// Release frees the reservation after a failed insert.
func (r *EmailReservation) Release(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.key(email)).Err()
}

func (r *EmailReservation) key(email string) string {
	return "reserve:email:" + email
}
