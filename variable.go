package caravel

import (
	"fmt"
	"sort"
)

// Variable describes one named dataset column.
//
// Hash is the content hash of Name (see HashName) and is the identity used
// by expression-tree leaves. Index is the zero-based column position within
// the owning dataset.
type Variable struct {
	Name  string
	Hash  uint64
	Index int
}

// variableRegistry maps column names and hashes to variables. Variables are
// kept sorted by hash for binary-search lookup; byName is rebuilt alongside.
type variableRegistry struct {
	byHash []Variable // sorted by Hash
	byName map[string]Variable
}

// newVariableRegistry derives a registry from column names. Column i gets
// Index i and the content hash of its name. Duplicate names and hash
// collisions between distinct names are rejected.
func newVariableRegistry(names []string) (*variableRegistry, error) {
	vars := make([]Variable, len(names))
	for i, name := range names {
		vars[i] = Variable{Name: name, Hash: HashName(name), Index: i}
	}

	sorted := append([]Variable{}, vars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hash < sorted[j].Hash })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Hash == sorted[i-1].Hash {
			if sorted[i].Name == sorted[i-1].Name {
				return nil, fmt.Errorf("%w: duplicate column name %q", ErrFormat, sorted[i].Name)
			}
			return nil, fmt.Errorf("%w: %q and %q both hash to %#x",
				ErrHashCollision, sorted[i-1].Name, sorted[i].Name, sorted[i].Hash)
		}
	}

	byName := make(map[string]Variable, len(names))
	for _, v := range vars {
		byName[v.Name] = v
	}

	return &variableRegistry{byHash: sorted, byName: byName}, nil
}

// lookupHash returns the variable with the given hash.
func (r *variableRegistry) lookupHash(hash uint64) (Variable, bool) {
	i := sort.Search(len(r.byHash), func(i int) bool { return r.byHash[i].Hash >= hash })
	if i < len(r.byHash) && r.byHash[i].Hash == hash {
		return r.byHash[i], true
	}
	return Variable{}, false
}

// lookupName returns the variable with the given name.
func (r *variableRegistry) lookupName(name string) (Variable, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// variables returns the registry contents in column order.
func (r *variableRegistry) variables() []Variable {
	out := make([]Variable, len(r.byHash))
	for _, v := range r.byHash {
		out[v.Index] = v
	}
	return out
}

// names returns the column names in column order.
func (r *variableRegistry) names() []string {
	out := make([]string, len(r.byHash))
	for _, v := range r.byHash {
		out[v.Index] = v.Name
	}
	return out
}
