package interfaces

import "context"

type SchedulerInterface interface {
	Init()
	Stop()
	Persist(ctx context.Context) error
}
