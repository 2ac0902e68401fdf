// Package mocks provides shared test doubles for the service and API tests.
//
// MockSummarizer scripts summarizer replies and records every call.
// MockTaskStore is an in-memory store.TaskStore with optional Fn overrides
// for injecting failures. NewNoopDB returns a *sql.DB whose transactions
// begin, commit and roll back without touching a database, so code built on
// store.RunInTransaction can run against MockTaskStore.
//
//	summarizer := mocks.NewMockSummarizerWithSummary("Buy milk at store")
//	tasks := mocks.NewMockTaskStore(nil)
//	svc, err := service.NewTaskService(tasks, summarizer, logger)
package mocks
