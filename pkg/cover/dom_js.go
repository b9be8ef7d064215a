//go:build js && wasm

package cover

import "syscall/js"

// JSDocument is a Document backed by the browser DOM.
type JSDocument struct {
	doc js.Value
}

func NewJSDocument() *JSDocument {
	return &JSDocument{doc: js.Global().Get("document")}
}

func (d *JSDocument) ElementByID(id string) (Element, bool) {
	if d.doc.IsUndefined() || d.doc.IsNull() {
		return nil, false
	}
	el := d.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return jsElement{el: el}, true
}

type jsElement struct {
	el js.Value
}

func (e jsElement) SetBackgroundImage(value string) {
	e.el.Get("style").Set("backgroundImage", value)
}
