package network

// Translation is the result of resolving an identifier across namespaces.
// Empty fields mean the namespace had no mapping.
type Translation struct {
	Complex   string
	Label     string
	Canonical string
	Kind      string
}

// Unresolved reports whether no namespace produced a mapping.
func (t Translation) Unresolved() bool {
	return t.Complex == "" && t.Label == "" && t.Canonical == ""
}

// Translator resolves identifiers to their canonical form.
type Translator interface {
	Translate(id string) Translation
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(id string) Translation

func (f TranslatorFunc) Translate(id string) Translation {
	return f(id)
}

// UnresolvedPolicy decides what happens to identifiers no translator resolves.
type UnresolvedPolicy int

const (
	// KeepVerbatim keeps the identifier as given and logs a warning.
	KeepVerbatim UnresolvedPolicy = iota
	// Reject refuses the node and logs a warning.
	Reject
)

var identity = TranslatorFunc(func(id string) Translation {
	return Translation{Canonical: id, Label: id}
})
