package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeAPIKeyExpireSweep = "apikey:expire:sweep"
)

type ExpireSweepPayload struct{}

func NewAPIKeyExpireSweepTask(opts ...asynq.Option) (*asynq.Task, error) {
	payload := ExpireSweepPayload{}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	uniqueOpt := asynq.Unique(1 * time.Hour)
	allOpts := append(opts, uniqueOpt)

	return asynq.NewTask(TypeAPIKeyExpireSweep, payloadBytes, allOpts...), nil
}
