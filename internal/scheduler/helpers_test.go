package scheduler

import (
	"intentd/internal/services"
	"intentd/internal/structures"
	"intentd/internal/testutil"
)

func newRealSessions(conf *structures.Config) *services.SessionService {
	return services.NewSessionService(conf, testutil.NewMockKVStore(), &testutil.MockLogger{}, testutil.NewMockMetrics())
}
