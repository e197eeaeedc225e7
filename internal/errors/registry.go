package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E099)
	// ============================================

	"E001": {
		Category:   CategoryRuntime,
		Message:    "Hook called outside a component render",
		Detail:     "UseState and UseEffect carry the render context of the instance being rendered. They must be called synchronously from a component function body, never from goroutines, event handlers, or effect bodies.",
		Suggestion: "Capture the setter during render and call the setter instead.",
		DocURL:     "https://weft-ui.dev/docs/errors/E001",
	},
	"E002": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed: extra hook call",
		Detail:     "A render called more hooks than the first render of this instance recorded. Hook identity is positional; every render of an instance must call the same hooks in the same order.",
		Suggestion: "Move the hook call out of the conditional or loop that guards it.",
		DocURL:     "https://weft-ui.dev/docs/errors/E002",
	},
	"E003": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed: kind mismatch",
		Detail:     "A hook slot recorded as one kind (state or effect) received a call of the other kind. Continuing would hand one hook's storage to an unrelated hook.",
		Suggestion: "Keep the sequence of UseState/UseEffect calls identical across renders.",
		DocURL:     "https://weft-ui.dev/docs/errors/E003",
	},
	"E004": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed: missing hook call",
		Detail:     "A render ended before consuming every hook record the first render of this instance created.",
		Suggestion: "Do not return early between hook calls.",
		DocURL:     "https://weft-ui.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Instance destroyed",
		Detail:   "The component instance has been removed from the tree. Setter calls against it are dropped silently; rendering it is a bug.",
		DocURL:   "https://weft-ui.dev/docs/errors/E005",
	},
	"E006": {
		Category:   CategoryRuntime,
		Message:    "Render re-entered",
		Detail:     "A component function triggered a synchronous render-inside-render. State setters only mark instances dirty; re-rendering happens at the next flush.",
		Suggestion: "Move the state write into an event handler or an effect.",
		DocURL:     "https://weft-ui.dev/docs/errors/E006",
	},

	// ============================================
	// Render Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryRender,
		Message:  "Unrenderable node",
		Detail:   "The renderer was handed a node kind it cannot serialize. Component calls must be expanded by the runtime before rendering.",
		DocURL:   "https://weft-ui.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryRender,
		Message:  "Void element with children",
		Detail:   "Void elements (br, img, input, ...) cannot have child nodes.",
		DocURL:   "https://weft-ui.dev/docs/errors/E041",
	},

	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "Malformed client event",
		Detail:   "The websocket frame could not be decoded as a client event.",
		DocURL:   "https://weft-ui.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Unknown hydration ID",
		Detail:   "A client event referenced an element the server no longer renders. Usually a stale client after a missed patch; the event is dropped.",
		DocURL:   "https://weft-ui.dev/docs/errors/E061",
	},

	// ============================================
	// Config Errors (E080-E099)
	// ============================================

	"E080": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Detail:     "weft.yaml could not be parsed.",
		Suggestion: "Check the YAML syntax and field names.",
		DocURL:     "https://weft-ui.dev/docs/errors/E080",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code, if registered.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template. Intended for tests.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
