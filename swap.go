package hxui

// SwapMode is an hx-swap strategy: how response HTML replaces the target.
//
// See https://htmx.org/attributes/hx-swap/.
type SwapMode string

const (
	// SwapOuter replaces the whole target element. This is the default.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces the target's children and keeps the element.
	SwapInner SwapMode = "innerHTML"

	// SwapBeforeEnd appends the response inside the target.
	SwapBeforeEnd SwapMode = "beforeend"

	// SwapNone discards the response body; headers such as HX-Trigger
	// still apply.
	SwapNone SwapMode = "none"
)
