// Package api handles incoming HTTP requests, request validation and
// response formatting for the task endpoints. It translates HTTP concerns
// into calls on service.TaskService and maps the resulting errors onto
// status codes.
package api
