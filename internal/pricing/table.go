package pricing

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed policies.yaml
var defaultPolicies []byte

// ErrUnknownPolicy is returned when a binding names a policy that does not exist.
var ErrUnknownPolicy = errors.New("unknown pricing policy")

type tableFile struct {
	Policies []Policy          `yaml:"policies"`
	Bindings map[string]string `yaml:"bindings"`
}

// Table is a validated set of policies plus the product bindings.
type Table struct {
	policies []Policy
	byName   map[string]int
	bindings map[domain.Product]string
}

// Default returns the bundled policy table.
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultPolicies))
}

// LoadFile reads a policy table from a YAML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening policy file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a policy table. Unknown YAML keys are rejected.
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding policy table: %w", err)
	}

	t := &Table{
		byName:   make(map[string]int, len(file.Policies)),
		bindings: make(map[domain.Product]string, len(file.Bindings)),
	}

	var errs []error
	for _, p := range file.Policies {
		errs = append(errs, p.Validate()...)
		if _, dup := t.byName[p.Name]; dup {
			errs = append(errs, fmt.Errorf("policy %q defined twice", p.Name))
			continue
		}
		t.byName[p.Name] = len(t.policies)
		t.policies = append(t.policies, p)
	}
	for product, name := range file.Bindings {
		if !domain.ValidProducts[product] {
			errs = append(errs, fmt.Errorf("bindings: unknown product %q", product))
			continue
		}
		if _, ok := t.byName[name]; !ok {
			errs = append(errs, fmt.Errorf("bindings: %s: %w %q", product, ErrUnknownPolicy, name))
			continue
		}
		t.bindings[domain.Product(product)] = name
	}
	for _, p := range domain.Products {
		if _, ok := t.bindings[p]; !ok {
			errs = append(errs, fmt.Errorf("bindings: product %q has no policy", p))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid policy table: %w", errors.Join(errs...))
	}
	return t, nil
}

// Policies returns every policy in file order.
func (t *Table) Policies() []Policy {
	out := make([]Policy, len(t.policies))
	copy(out, t.policies)
	return out
}

// Policy looks a policy up by name.
func (t *Table) Policy(name string) (Policy, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Policy{}, false
	}
	return t.policies[i], true
}

// For returns the policy bound to a product. Unbound products get an
// empty policy, which never discounts.
func (t *Table) For(p domain.Product) Policy {
	if name, ok := t.bindings[p]; ok {
		if pol, ok := t.Policy(name); ok {
			return pol
		}
	}
	return Policy{Name: "none", Style: StylePercent}
}

// BindingName returns the policy name bound to a product.
func (t *Table) BindingName(p domain.Product) string {
	return t.bindings[p]
}

// Bind rebinds a product to another policy of the table.
func (t *Table) Bind(p domain.Product, name string) error {
	if _, ok := t.byName[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownPolicy, name)
	}
	t.bindings[p] = name
	return nil
}
