//go:build js && wasm

// coverhub WASM: picks the page cover in the browser.
// Compiled with: GOOS=js GOARCH=wasm go build -o cover.wasm ./clients/wasm/
//
// The page may set globalThis.coverUrls before loading the module, or call
// goSetCovers(list) later. applyRandomCover() sets the cover.
package main

import (
	"fmt"
	"sync"
	"syscall/js"

	"coverhub/pkg/cover"
)

var (
	mu       sync.Mutex
	selector = cover.NewSelector(nil)
)

func main() {
	if urls := js.Global().Get("coverUrls"); urls.Type() == js.TypeObject {
		setCovers(toList(urls))
	}

	js.Global().Set("goSetCovers", js.FuncOf(goSetCovers))
	js.Global().Set("applyRandomCover", js.FuncOf(applyRandomCover))
	js.Global().Set("goCoverReady", js.ValueOf(true))
	fmt.Println("coverhub WASM loaded")

	// Block forever (WASM must not exit).
	select {}
}

func setCovers(list cover.List) {
	mu.Lock()
	selector = cover.NewSelector(list)
	mu.Unlock()
}

// goSetCovers(urls) replaces the cover list. Non-string entries are skipped.
func goSetCovers(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return js.ValueOf("error: need an array of urls")
	}
	list := toList(args[0])
	setCovers(list)
	return js.ValueOf(len(list))
}

// applyRandomCover() returns true when the cover element was changed.
func applyRandomCover(this js.Value, args []js.Value) interface{} {
	mu.Lock()
	s := selector
	mu.Unlock()
	return js.ValueOf(s.ApplyRandomCover(cover.NewJSDocument()))
}

func toList(arr js.Value) cover.List {
	n := arr.Length()
	list := make(cover.List, 0, n)
	for i := 0; i < n; i++ {
		v := arr.Index(i)
		if v.Type() == js.TypeString {
			list = append(list, v.String())
		}
	}
	return list
}
