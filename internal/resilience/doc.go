// Package resilience groups the fault tolerance helpers used around the
// PostgreSQL connection pool and the notification webhooks.
//
//   - circuitbreaker guards repository queries so an unreachable database
//     fails requests fast, and isolates each notification channel
//   - retry re-runs worker jobs that hit transient database errors
//
// Usage Example:
//
//	q := circuitbreaker.NewDBCircuitBreaker(sqlDB)
//	articles := postgres.NewArticleRepo(q)
//
//	err := retry.WithBackoff(ctx, retry.JobConfig(), func() error {
//	    _, err := tokens.PruneExpired(ctx, time.Now())
//	    return err
//	})
package resilience
