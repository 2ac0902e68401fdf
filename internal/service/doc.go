// Package service contains the task use cases. TaskService orchestrates
// domain validation, the summarizer and the task store so that a task is
// only persisted together with a summary of its current description.
//
// Error handling follows the same rules across the package:
//  1. Expected conditions are returned as sentinel errors (ErrTaskNotFound)
//  2. Summarizer and validation failures keep their sentinels reachable
//     through errors.Is so the API layer can choose a status code
//  3. Everything else is wrapped in a *TaskServiceError with the operation name
package service
