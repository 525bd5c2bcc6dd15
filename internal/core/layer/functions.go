package layer

import "strings"

// Functions is the set of lifecycle hooks a layer participates in. A layer
// declares it once at construction; the dispatcher never calls a hook whose
// bit is missing.
type Functions uint16

const (
	OnAppLoad Functions = 1 << iota
	OnAppUnload
	OnUpdate
	OnLateUpdate
	OnPreRender
	OnRender
	OnPostRender
	OnSceneLoad
	OnSceneUnload
	OnWindowResize

	None Functions = 0
	All  Functions = OnAppLoad | OnAppUnload | OnUpdate | OnLateUpdate | OnPreRender |
		OnRender | OnPostRender | OnSceneLoad | OnSceneUnload | OnWindowResize
)

var functionNames = [...]string{
	"OnAppLoad",
	"OnAppUnload",
	"OnUpdate",
	"OnLateUpdate",
	"OnPreRender",
	"OnRender",
	"OnPostRender",
	"OnSceneLoad",
	"OnSceneUnload",
	"OnWindowResize",
}

// Has reports whether every bit of fn is present in f.
func (f Functions) Has(fn Functions) bool {
	return fn != None && f&fn == fn
}

// Reversed reports whether fn is dispatched in reverse registration order.
// Teardown-style hooks unwind like a stack: the last registered layer runs
// first.
func Reversed(fn Functions) bool {
	switch fn {
	case OnPostRender, OnSceneUnload, OnAppUnload:
		return true
	default:
		return false
	}
}

// Each returns the individual hook bits of f in declaration order.
func (f Functions) Each() []Functions {
	var out []Functions
	for i := range functionNames {
		bit := Functions(1 << i)
		if f&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

func (f Functions) String() string {
	if f == None {
		return "None"
	}
	parts := make([]string, 0, len(functionNames))
	for i, name := range functionNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
