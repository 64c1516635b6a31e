package usage

import "time"

// Record is one append-only audit entry per authenticated request. Records
// are never mutated or deleted here; the rate limiter counts them within the
// trailing window.
type Record struct {
	ID          int64     `db:"id"`
	APIKeyID    int64     `db:"api_key_id"`
	Endpoint    string    `db:"endpoint"`
	HTTPMethod  string    `db:"http_method"`
	CallerIP    *string   `db:"caller_ip"`
	CallerAgent *string   `db:"caller_agent"`
	RequestedAt time.Time `db:"requested_at"`
}
