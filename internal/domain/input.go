package domain

// InputKind tags the two reference variants a raw user input can classify to.
type InputKind int

const (
	InputUsername InputKind = iota + 1
	InputHighlight
)

// InputRef is the typed result of classifying free-form user input.
type InputRef struct {
	Kind  InputKind
	Value string
}
