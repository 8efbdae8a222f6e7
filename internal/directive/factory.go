package directive

import (
	"github.com/oklog/ulid/v2"
	"github.com/vk/elemdirectives/internal/parser"
)

// Construct creates one instance per token whose name is registered in reg,
// in token order. Unknown names are skipped. No hooks are called.
func Construct(owner Element, tokens []parser.Token, reg *Registry) []*Instance {
	instances := make([]*Instance, 0, len(tokens))
	for _, tok := range tokens {
		def, ok := reg.Lookup(tok.Name)
		if !ok {
			continue
		}
		instances = append(instances, &Instance{
			ID:        ulid.Make(),
			Owner:     owner,
			Directive: Record{Name: tok.Name, Value: tok.Value},
			def:       def,
		})
	}
	return instances
}
