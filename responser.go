package ubermock

import (
	"sort"
	"sync"
)

// Namespace is a container of method stubs under the same API resource,
// e.g. all client.* methods.
type Namespace struct {
	mux sync.Mutex

	name    string
	methods map[string]*Method
}

func newNamespace(name string) *Namespace {
	return &Namespace{
		name:    name,
		methods: make(map[string]*Method),
	}
}

func (ns *Namespace) Name() string {
	return ns.name
}

// Method returns the stub of name, creating an unconfigured one on first use.
// The same *Method is returned for the same name until the mock is reset.
func (ns *Namespace) Method(name string) *Method {
	ns.mux.Lock()
	defer ns.mux.Unlock()

	method, ok := ns.methods[name]
	if !ok {
		method = newMethod(ns.qualify(name))

		ns.methods[name] = method
	}

	return method
}

// Methods returns all stubs of the namespace sorted by name.
func (ns *Namespace) Methods() []*Method {
	ns.mux.Lock()
	defer ns.mux.Unlock()

	methods := make([]*Method, 0, len(ns.methods))
	for _, method := range ns.methods {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool {
		return methods[i].name < methods[j].name
	})

	return methods
}

func (ns *Namespace) qualify(name string) string {
	if ns.name == "" {
		return name
	}

	return ns.name + "." + name
}
