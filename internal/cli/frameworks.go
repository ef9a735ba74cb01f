package cli

import (
	"sort"

	"github.com/toyz/peek/internal/utils"
	"github.com/toyz/peek/pkg/peek"
	"github.com/toyz/peek/pkg/peek/adapters"
)

// ServerFactory builds a fresh web server for "peek serve"
type ServerFactory func() peek.WebServer

// Frameworks maps --framework names to server factories
var Frameworks = newFrameworkRegistry()

func newFrameworkRegistry() *utils.BaseRegistry[string, ServerFactory] {
	r := utils.NewBaseRegistry[string, ServerFactory]("framework", "framework name")
	r.SetValidator(utils.ChainValidators(
		utils.NotNilValidator[string, ServerFactory]("server factory", func(f ServerFactory) bool { return f == nil }),
		utils.NoDuplicateValidator[string, ServerFactory]("framework"),
	))

	_ = r.Register("echo", func() peek.WebServer { return adapters.NewDefaultEchoAdapter() })
	_ = r.Register("gin", func() peek.WebServer { return adapters.NewDefaultGinAdapter() })
	_ = r.Register("fiber", func() peek.WebServer { return adapters.NewDefaultFiberAdapter() })
	return r
}

// FrameworkNames lists the registered frameworks in order
func FrameworkNames() []string {
	names := Frameworks.List()
	sort.Strings(names)
	return names
}
