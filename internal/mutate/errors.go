package mutate

import (
	"fmt"
	"strings"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type AmbiguousIDError struct {
	Ref     string
	Matches []string
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("ambiguous id %q matches %s", e.Ref, strings.Join(e.Matches, ", "))
}
