// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The only entity is Task: a title/description pair plus a summary derived
// from the description by an external summarizer.
package domain
