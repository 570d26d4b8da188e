package codegen

import (
	"sort"
)

// Entry is everything registered for one wire type key
type Entry struct {
	// HostType is the Java type of fields with this wire type
	HostType string

	// JNIType is the C type holding the Java value (e.g. jint, jobject)
	JNIType string

	// Signature is the JNI field signature (e.g. I, [B, Lio/fd/Foo;)
	Signature string

	// Accessor is the JNI field accessor suffix (e.g. IntField, ObjectField)
	Accessor string

	// Binding generates the marshalling code for fields of this type
	Binding Binding
}

// Registry is the generation context of one run. It maps wire type keys to
// their host types, JNI types, signatures, accessors and bindings. Keys are
// write-once: registering an existing key fails.
type Registry struct {
	hostTypes  map[string]string
	jniTypes   map[string]string
	signatures map[string]string
	accessors  map[string]string
	bindings   map[string]Binding
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		hostTypes:  make(map[string]string),
		jniTypes:   make(map[string]string),
		signatures: make(map[string]string),
		accessors:  make(map[string]string),
		bindings:   make(map[string]Binding),
	}
}

// Register adds an entry under key. It fails with ErrDuplicateKey if the key
// is already registered.
func (r *Registry) Register(key string, entry Entry) error {
	if r.Contains(key) {
		return &TypeError{Key: key, Err: ErrDuplicateKey}
	}
	r.hostTypes[key] = entry.HostType
	r.jniTypes[key] = entry.JNIType
	r.signatures[key] = entry.Signature
	r.accessors[key] = entry.Accessor
	r.bindings[key] = entry.Binding
	return nil
}

// RegisterAll adds all entries or none of them
func (r *Registry) RegisterAll(entries map[string]Entry) error {
	if err := r.CheckFree(keys(entries)...); err != nil {
		return err
	}
	for _, key := range keys(entries) {
		if err := r.Register(key, entries[key]); err != nil {
			return err
		}
	}
	return nil
}

// CheckFree fails with ErrDuplicateKey for the first key already registered
func (r *Registry) CheckFree(keys ...string) error {
	for _, key := range keys {
		if r.Contains(key) {
			return &TypeError{Key: key, Err: ErrDuplicateKey}
		}
	}
	return nil
}

// Contains reports whether key is registered
func (r *Registry) Contains(key string) bool {
	_, ok := r.hostTypes[key]
	return ok
}

// Lookup returns the entry registered under key
func (r *Registry) Lookup(key string) (Entry, error) {
	if !r.Contains(key) {
		return Entry{}, &TypeError{Key: key, Err: ErrUnregisteredType}
	}
	return Entry{
		HostType:  r.hostTypes[key],
		JNIType:   r.jniTypes[key],
		Signature: r.signatures[key],
		Accessor:  r.accessors[key],
		Binding:   r.bindings[key],
	}, nil
}

// HostType returns the Java type registered for key
func (r *Registry) HostType(key string) (string, error) {
	entry, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	return entry.HostType, nil
}

// Keys returns all registered keys in sorted order
func (r *Registry) Keys() []string {
	result := make([]string, 0, len(r.hostTypes))
	for key := range r.hostTypes {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of registered keys
func (r *Registry) Len() int {
	return len(r.hostTypes)
}

func keys(entries map[string]Entry) []string {
	result := make([]string, 0, len(entries))
	for key := range entries {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
