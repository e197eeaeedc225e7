package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/weft-ui/weft/internal/errors"
	"github.com/weft-ui/weft/pkg/vdom"
)

// Renderer serializes committed VNode trees to HTML. It assigns stable,
// sequential hydration IDs to every element and collects the handlers of
// interactive ones so a host can dispatch client events back into the tree.
//
// The input must be an expanded tree: component calls are the runtime's to
// resolve, and encountering one here is an error.
type Renderer struct {
	hidCounter uint32
	handlers   map[string]any
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		handlers: make(map[string]any),
	}
}

// RenderToString renders a committed tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a committed tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node)
}

// Handlers returns the handler registry collected during rendering.
// Keys are in the format "hid_eventname" (e.g., "h1_onclick").
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Reset clears the HID counter and handler registry for reuse.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]any)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node)
	case vdom.KindText:
		_, err := io.WriteString(w, escape(node.Text, false))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("E040").WithDetail("cannot render %s node", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode) error {
	tag := node.Tag

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	// Every element gets a hydration ID so patches can target it; handler
	// registration only happens for interactive ones.
	hid := r.nextHID()
	node.HID = hid
	if _, err := fmt.Fprintf(w, ` data-hid="%s"`, hid); err != nil {
		return err
	}
	if node.IsInteractive() {
		r.registerHandlers(hid, node)
	}

	if vdom.IsVoidElement(tag) {
		if len(node.Children) > 0 {
			return errors.New("E041").WithDetail("<%s> has %d children", tag, len(node.Children))
		}
		_, err := io.WriteString(w, ">")
		return err
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// renderAttributes renders attributes in sorted order for deterministic
// output. Event handlers become data-on-* markers for client binding.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if key == "key" || strings.HasPrefix(key, "_") {
			continue
		}

		if strings.HasPrefix(key, "on") && isHandler(value) {
			eventName := strings.ToLower(key[2:])
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, eventName); err != nil {
				return err
			}
			continue
		}

		// Boolean attributes render bare when true, not at all when false.
		if boolValue, ok := value.(bool); ok {
			if boolValue {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
			continue
		}

		strValue := attrToString(value)
		if strValue != "" {
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escape(strValue, true)); err != nil {
				return err
			}
		}
	}

	return nil
}

// nextHID generates the next sequential hydration ID.
func (r *Renderer) nextHID() string {
	r.hidCounter++
	return fmt.Sprintf("h%d", r.hidCounter)
}

// registerHandlers stores handler references for the given HID.
func (r *Renderer) registerHandlers(hid string, node *vdom.VNode) {
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isHandler(value) {
			r.handlers[hid+"_"+key] = value
		}
	}
}

// isHandler returns true if the value looks like an event handler.
func isHandler(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case func(), func(vdom.Event):
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
