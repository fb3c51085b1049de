package kernel

import (
	"fmt"
	"sort"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/vpcomp/internal/errs"
)

// Registered provider names.
const (
	ProviderWGSL   = "wgsl"
	ProviderStatic = "static"
)

// providers holds the metadata providers by name. Reflection from the
// embedded sources is preferred; the static table is the fallback.
var providers = gpucontext.NewRegistry[Provider](
	gpucontext.WithPriority(ProviderWGSL, ProviderStatic),
)

func init() {
	shared := NewWGSLProvider()
	providers.Register(ProviderWGSL, func() Provider { return shared })
	providers.Register(ProviderStatic, func() Provider { return Static{} })
}

// Register adds or replaces a named provider factory.
func Register(name string, factory func() Provider) {
	providers.Register(name, factory)
}

// Unregister removes a named provider.
func Unregister(name string) {
	providers.Unregister(name)
}

// Lookup returns the provider registered as name.
func Lookup(name string) (Provider, error) {
	if !providers.Has(name) {
		return nil, fmt.Errorf("kernel provider %q: %w", name, errs.InvalidParameter)
	}
	return providers.Get(name), nil
}

// Default returns the highest-priority registered provider and its name.
func Default() (Provider, string) {
	return providers.Best(), providers.BestName()
}

// Available returns the registered provider names in sorted order.
func Available() []string {
	names := providers.Available()
	sort.Strings(names)
	return names
}
