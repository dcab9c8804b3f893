// Package usecases holds the course application services.
package usecases

// MarkdownRenderer renders untrusted markdown into sanitized HTML.
type MarkdownRenderer interface {
	Render(source string) (string, error)
}
